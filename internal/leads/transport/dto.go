// Package transport defines request/response DTOs for the leads module.
package transport

import (
	"clearing_ops_backend/internal/leads/repository"
	"clearing_ops_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// IntakeRequest is the public lead capture form. Every field except the
// honeypot is optional; partial leads are accepted and scored lower.
type IntakeRequest struct {
	Name           string   `json:"name" validate:"max=200"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone" validate:"max=30"`
	Address        string   `json:"address" validate:"max=300"`
	Acreage        *float64 `json:"acreage" validate:"omitempty,gt=0"`
	PackageSlug    string   `json:"packageSlug" validate:"max=50"`
	EstimatedValue *int64   `json:"estimatedValue" validate:"omitempty,gte=0"`
	Notes          string   `json:"notes" validate:"max=2000"`
	Source         string   `json:"source" validate:"max=100"`
	TimeOnSiteSec  *int     `json:"timeOnSiteSec" validate:"omitempty,gte=0"`
	PagesViewed    *int     `json:"pagesViewed" validate:"omitempty,gte=0"`

	// Website is a honeypot field; bots fill it, humans never see it.
	Website string `json:"website" validate:"max=0"`
}

// CreateLeadRequest is the staff-side lead creation form.
type CreateLeadRequest struct {
	Name           string   `json:"name" validate:"max=200"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone" validate:"max=30"`
	Address        string   `json:"address" validate:"max=300"`
	Acreage        *float64 `json:"acreage" validate:"omitempty,gt=0"`
	PackageSlug    string   `json:"packageSlug" validate:"max=50"`
	EstimatedValue *int64   `json:"estimatedValue" validate:"omitempty,gte=0"`
	Notes          string   `json:"notes" validate:"max=2000"`
	Source         string   `json:"source" validate:"max=100"`
}

// UpdateLeadRequest modifies lead fields. Nil fields are unchanged.
type UpdateLeadRequest struct {
	Name           *string    `json:"name" validate:"omitempty,max=200"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Phone          *string    `json:"phone" validate:"omitempty,max=30"`
	Address        *string    `json:"address" validate:"omitempty,max=300"`
	Acreage        *float64   `json:"acreage" validate:"omitempty,gt=0"`
	PackageSlug    *string    `json:"packageSlug" validate:"omitempty,max=50"`
	EstimatedValue *int64     `json:"estimatedValue" validate:"omitempty,gte=0"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
	AssignedTo     *uuid.UUID `json:"assignedTo"`
}

// UpdateStatusRequest moves a lead through the workflow.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted won lost"`
}

// ListLeadsRequest filters the lead list.
type ListLeadsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=new contacted quoted won lost"`
	Search string `form:"search" validate:"omitempty,max=200"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int    `form:"offset" validate:"omitempty,gte=0"`
}

// LeadResponse pairs a lead with its freshly computed score.
type LeadResponse struct {
	repository.Lead
	Score scoring.Result `json:"score"`
}

// ListLeadsResponse is a scored, paginated lead list.
type ListLeadsResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// IntakeResponse acknowledges a public submission without leaking
// internal scoring details.
type IntakeResponse struct {
	ID        uuid.UUID `json:"id"`
	Duplicate bool      `json:"duplicate"`
}
