// Package service orchestrates filing sessions: it owns the boundary between
// the synchronous state store and the asynchronous collaborators (entity
// lookup, remote validation, submission, draft persistence). Collaborator
// results are fed back into the store through its ordinary mutation
// operations; the store itself never awaits anything.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/formconfig"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/metrics"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/ports"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/session"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/validate"
	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/publisher"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

// Service coordinates filing sessions and collaborators.
type Service struct {
	sessions *session.Manager
	drafts   ports.DraftStore
	lookup   ports.EntityLookup
	remote   ports.RemoteValidator
	submit   ports.Submitter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *publisher.Publisher
	guards   *guardSet
}

// Option configures optional collaborators.
type Option func(*Service)

// WithEntityLookup wires the registrant lookup collaborator.
func WithEntityLookup(lookup ports.EntityLookup) Option {
	return func(s *Service) { s.lookup = lookup }
}

// WithRemoteValidator wires the server-side validation collaborator.
func WithRemoteValidator(remote ports.RemoteValidator) Option {
	return func(s *Service) { s.remote = remote }
}

// WithSubmitter wires the submission collaborator.
func WithSubmitter(submit ports.Submitter) Option {
	return func(s *Service) { s.submit = submit }
}

// WithMetrics wires the filing metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit wires the audit publisher.
func WithAudit(p *publisher.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// New constructs the filing service. Sessions, drafts, and a logger are
// required; collaborators are optional and their absence degrades the related
// operation rather than failing construction.
func New(sessions *session.Manager, drafts ports.DraftStore, logger *slog.Logger, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if drafts == nil {
		return nil, errors.New("draft store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	s := &Service{
		sessions: sessions,
		drafts:   drafts,
		logger:   logger,
		guards:   newGuardSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start opens a new filing session for the form type and returns its ID with
// the initial record snapshot. Unknown form types resolve to the default, so
// Start never fails on the type alone.
func (s *Service) Start(ctx context.Context, formType models.FormType) (uuid.UUID, models.FilingRecord) {
	resolved := formconfig.Resolve(formType).FormType
	id := s.sessions.Create(resolved)

	if s.metrics != nil {
		s.metrics.FilingsStarted.WithLabelValues(resolved.String()).Inc()
	}
	s.emit(ctx, audit.Event{SessionID: id, FormType: resolved.String(), Action: string(audit.EventFilingStarted)})

	var snap models.FilingRecord
	_ = s.sessions.Do(id, func(store *session.Store) error {
		snap = store.Snapshot()
		return nil
	})
	return id, snap
}

// Discard removes a session entirely.
func (s *Service) Discard(id uuid.UUID) {
	s.guards.drop(id)
	s.sessions.Delete(id)
}

// Snapshot returns a deep copy of the session's current record.
func (s *Service) Snapshot(id uuid.UUID) (models.FilingRecord, error) {
	var snap models.FilingRecord
	err := s.do(id, func(store *session.Store) error {
		snap = store.Snapshot()
		return nil
	})
	return snap, err
}

// StepState is the live navigation view for the rendering surface.
type StepState struct {
	Steps        []formconfig.Step `json:"steps"`
	CurrentIndex int               `json:"currentIndex"`
}

// Steps returns the resolved step list and current cursor for the session.
func (s *Service) Steps(id uuid.UUID) (StepState, error) {
	var state StepState
	err := s.do(id, func(store *session.Store) error {
		state.Steps = store.Config().Steps
		state.CurrentIndex = store.Snapshot().CurrentStepIndex
		return nil
	})
	return state, err
}

// Reset discards the record and starts over, optionally under a new form type.
func (s *Service) Reset(ctx context.Context, id uuid.UUID, formType models.FormType) error {
	err := s.do(id, func(store *session.Store) error {
		store.Reset(formType)
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, audit.Event{SessionID: id, FormType: formType.String(), Action: string(audit.EventFilingReset)})
	return nil
}

// Mutate runs one state-store operation under the session lock. Handlers use
// this for plain store passthroughs so every mutation shares the same
// not-found translation.
func (s *Service) Mutate(id uuid.UUID, fn func(*session.Store) error) error {
	return s.do(id, fn)
}

// ValidationReport carries local engine findings alongside the remote
// collaborator's, kept separate because only local findings gate submission.
type ValidationReport struct {
	Findings       []string `json:"findings"`
	RemoteFindings []string `json:"remoteFindings,omitempty"`
}

// Validate recomputes the complete finding set for the session. The remote
// validation runs concurrently with the local engine and degrades to
// local-only when the collaborator fails; remote findings never gate local
// state transitions.
func (s *Service) Validate(ctx context.Context, id uuid.UUID) (ValidationReport, error) {
	var (
		snap models.FilingRecord
		cfg  formconfig.Configuration
	)
	if err := s.do(id, func(store *session.Store) error {
		snap = store.Snapshot()
		cfg = store.Config()
		return nil
	}); err != nil {
		return ValidationReport{}, err
	}

	var report ValidationReport
	g, gctx := errgroup.WithContext(ctx)
	if s.remote != nil {
		g.Go(func() error {
			res, err := s.remote.Validate(gctx, snap.FormType, snap)
			if err != nil {
				s.logger.WarnContext(gctx, "remote validation unavailable",
					"session_id", id,
					"error", err,
				)
				return nil
			}
			report.RemoteFindings = res.Errors
			return nil
		})
	}
	report.Findings = validate.Check(snap, cfg)
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.ValidationsRun.Inc()
		s.metrics.FindingsObserved.Add(float64(len(report.Findings)))
	}
	return report, nil
}

// SaveDraft persists a snapshot of the session's record and returns the draft
// ID.
func (s *Service) SaveDraft(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return uuid.Nil, err
	}

	draftID, err := s.drafts.Save(ctx, snap)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeUnavailable, "draft storage is unavailable")
	}

	if s.metrics != nil {
		s.metrics.DraftsSaved.Inc()
	}
	s.emit(ctx, audit.Event{SessionID: id, FormType: snap.FormType.String(), Action: string(audit.EventDraftSaved), Reason: draftID.String()})
	return draftID, nil
}

// LoadDraft replaces the session's record with a previously saved draft.
func (s *Service) LoadDraft(ctx context.Context, id uuid.UUID, draftID uuid.UUID) (models.FilingRecord, error) {
	record, err := s.drafts.Load(ctx, draftID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.FilingRecord{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("draft %s not found", draftID))
		}
		return models.FilingRecord{}, dErrors.New(dErrors.CodeUnavailable, "draft storage is unavailable")
	}

	var snap models.FilingRecord
	if err := s.do(id, func(store *session.Store) error {
		store.LoadDraft(record)
		snap = store.Snapshot()
		return nil
	}); err != nil {
		return models.FilingRecord{}, err
	}

	if s.metrics != nil {
		s.metrics.DraftsLoaded.Inc()
	}
	s.emit(ctx, audit.Event{SessionID: id, FormType: snap.FormType.String(), Action: string(audit.EventDraftLoaded), Reason: draftID.String()})
	return snap, nil
}

// Submit hands the filing off once local validation is clean. The record is
// left exactly as it was when submission fails; only the transient submission
// state changes.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (ValidationReport, error) {
	var (
		snap models.FilingRecord
		cfg  formconfig.Configuration
	)
	if err := s.do(id, func(store *session.Store) error {
		snap = store.Snapshot()
		cfg = store.Config()
		return nil
	}); err != nil {
		return ValidationReport{}, err
	}

	findings := validate.Check(snap, cfg)
	if len(findings) > 0 {
		return ValidationReport{Findings: findings},
			dErrors.New(dErrors.CodeValidationFailed, "filing has unresolved validation findings")
	}
	if s.submit == nil {
		return ValidationReport{}, dErrors.New(dErrors.CodeUnavailable, "submission collaborator is not configured")
	}

	_ = s.do(id, func(store *session.Store) error {
		store.SetSubmitting(true)
		store.SetSubmissionError("")
		return nil
	})

	submitErr := s.submit.Submit(ctx, snap.FormType, snap)

	_ = s.do(id, func(store *session.Store) error {
		store.SetSubmitting(false)
		if submitErr != nil {
			store.SetSubmissionError(submitErr.Error())
		}
		return nil
	})

	if submitErr != nil {
		if s.metrics != nil {
			s.metrics.Submissions.WithLabelValues("failure").Inc()
		}
		s.emit(ctx, audit.Event{SessionID: id, FormType: snap.FormType.String(), Action: string(audit.EventSubmissionFailed), Reason: submitErr.Error()})
		return ValidationReport{}, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("submission failed: %s", submitErr))
	}

	if s.metrics != nil {
		s.metrics.Submissions.WithLabelValues("success").Inc()
	}
	s.emit(ctx, audit.Event{SessionID: id, FormType: snap.FormType.String(), Action: string(audit.EventFilingSubmitted)})
	return ValidationReport{Findings: []string{}}, nil
}

// do translates manager-level not-found into a domain error once, so every
// handler path reports missing sessions the same way.
func (s *Service) do(id uuid.UUID, fn func(*session.Store) error) error {
	err := s.sessions.Do(id, fn)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("filing session %s not found", id))
	}
	return err
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}
