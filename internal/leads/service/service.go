// Package service implements leads business logic: intake, the follow-up
// workflow, and score-on-read.
package service

import (
	"context"
	"time"

	"clearing_ops_backend/internal/events"
	"clearing_ops_backend/internal/leads/dedupe"
	"clearing_ops_backend/internal/leads/repository"
	"clearing_ops_backend/internal/leads/scoring"
	"clearing_ops_backend/internal/leads/transport"
	"clearing_ops_backend/platform/apperr"
	"clearing_ops_backend/platform/logger"
	"clearing_ops_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// scoreWorkers bounds concurrent scoring during list assembly. Scoring is
// pure and cheap; the bound just keeps goroutine counts sane on big pages.
const scoreWorkers = 8

// hotFollowUpDelay is how long a hot lead may sit uncontacted before the
// scheduler nudges the office.
const hotFollowUpDelay = time.Hour

// FollowUpScheduler enqueues a delayed follow-up check for a lead.
type FollowUpScheduler interface {
	ScheduleLeadFollowUp(ctx context.Context, leadID uuid.UUID, delay time.Duration) error
}

// validTransitions defines the follow-up workflow. A lead can be reopened
// from lost, but a won lead is terminal.
var validTransitions = map[string][]string{
	repository.StatusNew:       {repository.StatusContacted, repository.StatusLost},
	repository.StatusContacted: {repository.StatusQuoted, repository.StatusLost},
	repository.StatusQuoted:    {repository.StatusWon, repository.StatusLost},
	repository.StatusLost:      {repository.StatusNew},
	repository.StatusWon:       {},
}

// Service coordinates lead operations.
type Service struct {
	repo      repository.Repository
	deduper   *dedupe.Deduper
	bus       events.Bus
	scheduler FollowUpScheduler
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new leads service. The deduper and scheduler are optional;
// without them intake skips deduplication and follow-up scheduling.
func New(repo repository.Repository, deduper *dedupe.Deduper, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		deduper: deduper,
		bus:     bus,
		log:     log,
		now:     time.Now,
	}
}

// SetFollowUpScheduler wires the delayed follow-up queue.
func (s *Service) SetFollowUpScheduler(scheduler FollowUpScheduler) {
	s.scheduler = scheduler
}

// Intake handles a public form submission: normalize, dedupe, persist,
// score, and publish. Duplicates are acknowledged without a second lead.
func (s *Service) Intake(ctx context.Context, req transport.IntakeRequest) (transport.IntakeResponse, error) {
	normalizedPhone := phone.NormalizeE164(req.Phone)

	if s.deduper != nil {
		seen, err := s.deduper.Seen(ctx, req.Email, normalizedPhone)
		if err != nil {
			// Redis being down should not drop real leads.
			s.log.Warn("intake dedupe unavailable", "error", err.Error())
		} else if seen {
			return transport.IntakeResponse{Duplicate: true}, nil
		}
	}

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:           optional(req.Name),
		Email:          optional(req.Email),
		Phone:          optional(normalizedPhone),
		Address:        optional(req.Address),
		Acreage:        req.Acreage,
		PackageSlug:    optional(req.PackageSlug),
		EstimatedValue: req.EstimatedValue,
		Notes:          optional(req.Notes),
		Source:         optional(req.Source),
		TimeOnSiteSec:  req.TimeOnSiteSec,
		PagesViewed:    req.PagesViewed,
		SubmittedAt:    s.now().UTC(),
	})
	if err != nil {
		return transport.IntakeResponse{}, err
	}

	score := s.ScoreLead(lead)
	s.publishCreated(ctx, lead, score, true)
	s.scheduleHotFollowUp(ctx, lead, score)

	return transport.IntakeResponse{ID: lead.ID}, nil
}

// Create adds a lead from the office dashboard. Staff-entered leads skip
// deduplication; the office knows who it is talking to.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:           optional(req.Name),
		Email:          optional(req.Email),
		Phone:          optional(phone.NormalizeE164(req.Phone)),
		Address:        optional(req.Address),
		Acreage:        req.Acreage,
		PackageSlug:    optional(req.PackageSlug),
		EstimatedValue: req.EstimatedValue,
		Notes:          optional(req.Notes),
		Source:         optional(req.Source),
		SubmittedAt:    s.now().UTC(),
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	score := s.ScoreLead(lead)
	s.publishCreated(ctx, lead, score, false)

	return transport.LeadResponse{Lead: lead, Score: score}, nil
}

// Get returns a lead with its current score.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return transport.LeadResponse{Lead: lead, Score: s.ScoreLead(lead)}, nil
}

// List returns scored leads. Scoring runs concurrently across the page;
// each computation is independent and pure.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status: req.Status,
		Search: req.Search,
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoreWorkers)
	for i, lead := range leads {
		g.Go(func() error {
			items[i] = transport.LeadResponse{Lead: lead, Score: s.ScoreLead(lead)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.ListLeadsResponse{}, err
	}

	return transport.ListLeadsResponse{Items: items, Total: total}, nil
}

// Update modifies lead fields and returns the rescored lead.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	var normalizedPhone *string
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		normalizedPhone = &normalized
	}

	lead, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:             id,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          normalizedPhone,
		Address:        req.Address,
		Acreage:        req.Acreage,
		PackageSlug:    req.PackageSlug,
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
		AssignedTo:     req.AssignedTo,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return transport.LeadResponse{Lead: lead, Score: s.ScoreLead(lead)}, nil
}

// UpdateStatus moves a lead through the workflow, rejecting transitions
// the workflow does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req transport.UpdateStatusRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if lead.Status == req.Status {
		return transport.LeadResponse{Lead: lead, Score: s.ScoreLead(lead)}, nil
	}
	if !transitionAllowed(lead.Status, req.Status) {
		return transport.LeadResponse{}, apperr.Conflict("cannot move lead from " + lead.Status + " to " + req.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
		OldStatus: lead.Status,
		NewStatus: updated.Status,
		ActorID:   actorID,
	})

	return transport.LeadResponse{Lead: updated, Score: s.ScoreLead(updated)}, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MarkQuoted transitions a lead to quoted when a quote goes out. Called
// by the quotes module; an already-quoted or closed lead is left alone.
func (s *Service) MarkQuoted(ctx context.Context, id uuid.UUID) error {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(lead.Status, repository.StatusQuoted) {
		return nil
	}

	_, err = s.repo.UpdateStatus(ctx, id, repository.StatusQuoted)
	return err
}

// MarkWon transitions a lead to won on quote acceptance.
func (s *Service) MarkWon(ctx context.Context, id uuid.UUID) error {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(lead.Status, repository.StatusWon) {
		return nil
	}

	_, err = s.repo.UpdateStatus(ctx, id, repository.StatusWon)
	return err
}

// ScoreLead computes the current score for a lead snapshot.
func (s *Service) ScoreLead(lead repository.Lead) scoring.Result {
	return scoring.Score(scoring.Input{
		Name:           deref(lead.Name),
		Email:          deref(lead.Email),
		Phone:          deref(lead.Phone),
		Address:        deref(lead.Address),
		Acreage:        lead.Acreage,
		PackageID:      deref(lead.PackageSlug),
		EstimatedValue: lead.EstimatedValue,
		Notes:          deref(lead.Notes),
		Source:         deref(lead.Source),
		SubmittedAt:    lead.SubmittedAt,
		TimeOnSiteSec:  lead.TimeOnSiteSec,
		PagesViewed:    lead.PagesViewed,
	}, s.now())
}

func (s *Service) publishCreated(ctx context.Context, lead repository.Lead, score scoring.Result, publicIntake bool) {
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		Name:         deref(lead.Name),
		Email:        deref(lead.Email),
		Phone:        deref(lead.Phone),
		Source:       deref(lead.Source),
		Score:        score.Total,
		Grade:        string(score.Grade),
		PublicIntake: publicIntake,
	})
}

// scheduleHotFollowUp enqueues a delayed check for A and B grade leads so
// they do not sit in the inbox past their window.
func (s *Service) scheduleHotFollowUp(ctx context.Context, lead repository.Lead, score scoring.Result) {
	if s.scheduler == nil {
		return
	}
	if score.Grade != scoring.GradeA && score.Grade != scoring.GradeB {
		return
	}

	if err := s.scheduler.ScheduleLeadFollowUp(ctx, lead.ID, hotFollowUpDelay); err != nil {
		s.log.Warn("failed to schedule lead follow-up", "leadId", lead.ID, "error", err.Error())
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
