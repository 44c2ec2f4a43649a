// Package service implements quote business logic: pricing via the rate
// card, revisioned proposals, and the customer accept/decline flow.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"clearing_ops_backend/internal/events"
	leadstransport "clearing_ops_backend/internal/leads/transport"
	"clearing_ops_backend/internal/pricing"
	"clearing_ops_backend/internal/quotes/repository"
	"clearing_ops_backend/internal/quotes/transport"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/logger"
)

// publicTokenBytes sizes the proposal link token. 32 random bytes is far
// beyond guessable.
const publicTokenBytes = 32

const qrImageSize = 256

// RateTableLoader supplies the current rate card for pricing.
type RateTableLoader interface {
	LoadRateTable(ctx context.Context) (pricing.RateTable, error)
}

// LeadSource provides customer details and workflow hooks from the leads
// module.
type LeadSource interface {
	Get(ctx context.Context, id uuid.UUID) (leadstransport.LeadResponse, error)
	MarkQuoted(ctx context.Context, id uuid.UUID) error
	MarkWon(ctx context.Context, id uuid.UUID) error
}

// Service coordinates quote operations.
type Service struct {
	repo    repository.Repository
	rates   RateTableLoader
	leads   LeadSource
	bus     events.Bus
	baseURL string
	log     *logger.Logger
	now     func() time.Time
}

// New creates a new quotes service. baseURL is the customer-facing site
// root used to build public proposal links.
func New(repo repository.Repository, rates RateTableLoader, leads LeadSource, bus events.Bus, baseURL string, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		rates:   rates,
		leads:   leads,
		bus:     bus,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		now:     time.Now,
	}
}

// Create prices a lead's project and opens a draft quote. Customer fields
// left empty on the request are filled from the lead.
func (s *Service) Create(ctx context.Context, req transport.CreateQuoteRequest) (transport.QuoteResponse, error) {
	lead, err := s.leads.Get(ctx, req.LeadID)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	params, err := s.price(ctx, req.ServiceType, req.Acreage, req.PackageSlug, req.IncludeHauling)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	token, err := newPublicToken()
	if err != nil {
		return transport.QuoteResponse{}, fmt.Errorf("generate public token: %w", err)
	}

	quote, revision, err := s.repo.Create(ctx, repository.CreateParams{
		LeadID:        req.LeadID,
		PublicToken:   token,
		CustomerName:  fallback(req.CustomerName, deref(lead.Name)),
		CustomerEmail: fallback(req.CustomerEmail, deref(lead.Email)),
		CustomerPhone: fallback(req.CustomerPhone, deref(lead.Phone)),
		SiteAddress:   fallback(req.SiteAddress, deref(lead.Address)),
		Revision:      params,
	})
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	return transport.QuoteResponse{Quote: quote, Pricing: revision}, nil
}

// Get returns a quote with its current pricing revision.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	revision, err := s.repo.CurrentRevision(ctx, quote.ID)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	return transport.QuoteResponse{Quote: quote, Pricing: revision}, nil
}

// List returns quotes with their current pricing.
func (s *Service) List(ctx context.Context, req transport.ListQuotesRequest) (transport.ListQuotesResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	quotes, total, err := s.repo.List(ctx, repository.ListParams{
		Status: req.Status,
		LeadID: req.LeadID,
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return transport.ListQuotesResponse{}, err
	}

	items := make([]transport.QuoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		revision, err := s.repo.CurrentRevision(ctx, quote.ID)
		if err != nil {
			return transport.ListQuotesResponse{}, err
		}
		items = append(items, transport.QuoteResponse{Quote: quote, Pricing: revision})
	}

	return transport.ListQuotesResponse{Items: items, Total: total}, nil
}

// Revisions returns the full pricing history of a quote.
func (s *Service) Revisions(ctx context.Context, id uuid.UUID) (transport.RevisionsResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return transport.RevisionsResponse{}, err
	}

	revisions, err := s.repo.ListRevisions(ctx, id)
	if err != nil {
		return transport.RevisionsResponse{}, err
	}

	return transport.RevisionsResponse{Items: revisions}, nil
}

// Recalculate reprices an undecided quote. The previous revision stays on
// record; the new one becomes current.
func (s *Service) Recalculate(ctx context.Context, id uuid.UUID, req transport.RecalculateRequest) (transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	if decided(quote.Status) {
		return transport.QuoteResponse{}, apperr.Conflict("quote is already " + quote.Status)
	}

	params, err := s.price(ctx, req.ServiceType, req.Acreage, req.PackageSlug, req.IncludeHauling)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	revision, err := s.repo.AddRevision(ctx, id, params)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	return transport.QuoteResponse{Quote: quote, Pricing: revision}, nil
}

// Send marks the quote sent and publishes the event that triggers the
// proposal email. Resending an already-sent quote is allowed.
func (s *Service) Send(ctx context.Context, id uuid.UUID) (transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	if decided(quote.Status) {
		return transport.QuoteResponse{}, apperr.Conflict("quote is already " + quote.Status)
	}

	updated, err := s.repo.MarkSent(ctx, id, s.now().UTC())
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	revision, err := s.repo.CurrentRevision(ctx, id)
	if err != nil {
		return transport.QuoteResponse{}, err
	}

	if err := s.leads.MarkQuoted(ctx, updated.LeadID); err != nil {
		s.log.Warn("failed to mark lead quoted", "leadId", updated.LeadID, "error", err.Error())
	}

	s.bus.Publish(ctx, events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       updated.ID,
		LeadID:        updated.LeadID,
		QuoteNumber:   updated.QuoteNumber,
		PublicToken:   updated.PublicToken,
		CustomerName:  updated.CustomerName,
		CustomerEmail: updated.CustomerEmail,
		Total:         revision.Total,
		Deposit:       revision.Deposit,
	})

	return transport.QuoteResponse{Quote: updated, Pricing: revision}, nil
}

// GetPublic returns the customer-facing proposal view. Draft quotes are
// invisible; their token has not been shared yet.
func (s *Service) GetPublic(ctx context.Context, token string) (transport.PublicQuoteResponse, error) {
	quote, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}
	if quote.Status == repository.StatusDraft {
		return transport.PublicQuoteResponse{}, apperr.NotFound("quote not found")
	}

	revision, err := s.repo.CurrentRevision(ctx, quote.ID)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}

	return publicView(quote, revision), nil
}

// Accept records the customer's acceptance from the public link.
func (s *Service) Accept(ctx context.Context, token string, req transport.AcceptQuoteRequest) (transport.PublicQuoteResponse, error) {
	quote, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}
	if quote.Status != repository.StatusSent {
		return transport.PublicQuoteResponse{}, apperr.Conflict("quote is not open for acceptance")
	}

	updated, err := s.repo.RecordDecision(ctx, repository.DecisionParams{
		ID:            quote.ID,
		Status:        repository.StatusAccepted,
		SignatureName: &req.SignatureName,
		DecidedAt:     s.now().UTC(),
	})
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}

	revision, err := s.repo.CurrentRevision(ctx, updated.ID)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}

	if err := s.leads.MarkWon(ctx, updated.LeadID); err != nil {
		s.log.Warn("failed to mark lead won", "leadId", updated.LeadID, "error", err.Error())
	}

	s.bus.Publish(ctx, events.QuoteAccepted{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       updated.ID,
		LeadID:        updated.LeadID,
		QuoteNumber:   updated.QuoteNumber,
		SignatureName: req.SignatureName,
		CustomerName:  updated.CustomerName,
		CustomerEmail: updated.CustomerEmail,
		Total:         revision.Total,
		Deposit:       revision.Deposit,
	})

	return publicView(updated, revision), nil
}

// Decline records the customer's decline from the public link.
func (s *Service) Decline(ctx context.Context, token string, req transport.DeclineQuoteRequest) (transport.PublicQuoteResponse, error) {
	quote, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}
	if quote.Status != repository.StatusSent {
		return transport.PublicQuoteResponse{}, apperr.Conflict("quote is not open for decision")
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	updated, err := s.repo.RecordDecision(ctx, repository.DecisionParams{
		ID:            quote.ID,
		Status:        repository.StatusDeclined,
		DeclineReason: reason,
		DecidedAt:     s.now().UTC(),
	})
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}

	revision, err := s.repo.CurrentRevision(ctx, updated.ID)
	if err != nil {
		return transport.PublicQuoteResponse{}, err
	}

	s.bus.Publish(ctx, events.QuoteDeclined{
		BaseEvent:    events.NewBaseEvent(),
		QuoteID:      updated.ID,
		LeadID:       updated.LeadID,
		QuoteNumber:  updated.QuoteNumber,
		Reason:       req.Reason,
		CustomerName: updated.CustomerName,
	})

	return publicView(updated, revision), nil
}

// QRCode renders the public proposal link as a PNG for printed proposals.
func (s *Service) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.PublicURL(quote.PublicToken), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode quote QR: %w", err)
	}

	return png, nil
}

// PublicURL builds the customer-facing proposal link for a token.
func (s *Service) PublicURL(token string) string {
	return s.baseURL + "/proposals/" + token
}

func (s *Service) price(ctx context.Context, serviceType string, acreage float64, packageSlug string, includeHauling bool) (repository.RevisionParams, error) {
	table, err := s.rates.LoadRateTable(ctx)
	if err != nil {
		return repository.RevisionParams{}, err
	}

	estimate, err := pricing.New(table).Quote(pricing.QuoteRequest{
		ServiceType:    serviceType,
		Acreage:        acreage,
		PackageID:      packageSlug,
		IncludeHauling: includeHauling,
	})
	if err != nil {
		return repository.RevisionParams{}, err
	}

	var slug *string
	if packageSlug != "" {
		slug = &packageSlug
	}

	return repository.RevisionParams{
		ServiceType:    serviceType,
		Acreage:        acreage,
		PackageSlug:    slug,
		IncludeHauling: includeHauling,
		Estimate:       *estimate,
	}, nil
}

func publicView(quote repository.Quote, revision repository.Revision) transport.PublicQuoteResponse {
	return transport.PublicQuoteResponse{
		QuoteNumber:  quote.QuoteNumber,
		Status:       quote.Status,
		CustomerName: quote.CustomerName,
		SiteAddress:  quote.SiteAddress,
		ServiceType:  revision.ServiceType,
		Acreage:      revision.Acreage,
		Breakdown:    revision.Breakdown,
		Total:        revision.Total,
		Deposit:      revision.Deposit,
		SentAt:       quote.SentAt,
	}
}

func decided(status string) bool {
	return status == repository.StatusAccepted || status == repository.StatusDeclined
}

func newPublicToken() (string, error) {
	buf := make([]byte, publicTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
