// Package handler is the HTTP surface of the filing core: one route per store
// operation plus validation, drafts, lookup, and submission. Handlers decode
// and enforce field-level input rules, then delegate; business logic stays in
// the service and the session store.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/formconfig"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/service"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/session"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/metrics"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/middleware"
	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"
)

// Handler handles filing session endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *service.Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a filing Handler. The JWT validator is optional; when nil the
// routes are unauthenticated (development mode).
func New(svc *service.Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      svc,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the filing routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	filingRouter := chi.NewRouter()
	filingRouter.Use(middleware.Recovery(h.logger))
	filingRouter.Use(middleware.RequestID)
	filingRouter.Use(middleware.Logger(h.logger))
	filingRouter.Use(middleware.Timeout(30 * time.Second))
	filingRouter.Use(middleware.ContentTypeJSON)
	filingRouter.Use(middleware.LatencyMiddleware(h.metrics))
	if h.jwtValidator != nil {
		filingRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	}

	filingRouter.Get("/form-types", h.handleFormTypes)

	filingRouter.Post("/filings", h.handleStart)
	filingRouter.Route("/filings/{sessionID}", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Delete("/", h.handleDiscard)
		r.Post("/reset", h.handleReset)

		r.Get("/steps", h.handleSteps)
		r.Put("/steps", h.handleGoToStep)
		r.Post("/steps/next", h.handleNextStep)
		r.Post("/steps/prev", h.handlePrevStep)

		r.Get("/sections/{section}", h.handleSection)

		r.Patch("/issuer", h.handleUpdateIssuer)
		r.Post("/issuer/lookup", h.handleLookupIssuer)
		r.Patch("/amendment", h.handleUpdateAmendment)

		r.Post("/owners", h.handleAddOwner)
		r.Patch("/owners/{index}", h.handleUpdateOwner)
		r.Delete("/owners/{index}", h.handleRemoveOwner)
		r.Post("/owners/{index}/lookup", h.handleLookupOwner)

		r.Post("/transactions/{kind}", h.handleAddTransaction)
		r.Patch("/transactions/{kind}/{index}", h.handleUpdateTransaction)
		r.Delete("/transactions/{kind}/{index}", h.handleRemoveTransaction)

		r.Post("/holdings/{kind}", h.handleAddHolding)
		r.Patch("/holdings/{kind}/{index}", h.handleUpdateHolding)
		r.Delete("/holdings/{kind}/{index}", h.handleRemoveHolding)

		r.Post("/footnotes", h.handleAddFootnote)
		r.Patch("/footnotes/{index}", h.handleUpdateFootnote)
		r.Delete("/footnotes/{index}", h.handleRemoveFootnote)

		r.Put("/remarks", h.handleUpdateRemarks)
		r.Put("/affirmation", h.handleSetAffirmation)

		r.Post("/validate", h.handleValidate)
		r.Post("/submit", h.handleSubmit)
		r.Post("/draft", h.handleSaveDraft)
		r.Post("/draft/load", h.handleLoadDraft)
	})

	r.Mount("/", filingRouter)
}

// handleFormTypes lists the six form types with their resolved step layouts so
// front ends can render the type chooser without hardcoding.
func (h *Handler) handleFormTypes(w http.ResponseWriter, r *http.Request) {
	type formTypeView struct {
		FormType    string            `json:"formType"`
		IsAmendment bool              `json:"isAmendment"`
		Steps       []formconfig.Step `json:"steps"`
	}
	all := []models.FormType{
		models.FormType3, models.FormType3A,
		models.FormType4, models.FormType4A,
		models.FormType5, models.FormType5A,
	}
	views := make([]formTypeView, 0, len(all))
	for _, t := range all {
		cfg := formconfig.Resolve(t)
		views = append(views, formTypeView{
			FormType:    t.String(),
			IsAmendment: cfg.IsAmendment,
			Steps:       cfg.Steps,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startFilingRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, record := h.service.Start(r.Context(), models.FormType(req.FormType))

	if req.DraftID != "" {
		draftID, err := uuid.Parse(req.DraftID)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeInvalidInput, "draftId must be a UUID"))
			return
		}
		loaded, err := h.service.LoadDraft(r.Context(), id, draftID)
		if err != nil {
			h.service.Discard(id)
			writeError(w, err)
			return
		}
		record = loaded
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId": id,
		"record":    record,
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	record, err := h.service.Snapshot(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.service.Discard(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req resetRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.Reset(r.Context(), id, models.FormType(req.FormType)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSteps(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	state, err := h.service.Steps(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleGoToStep(w http.ResponseWriter, r *http.Request) {
	var req goToStepRequest
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &req); err != nil {
			return err
		}
		return store.GoToStep(req.Index)
	})
}

func (h *Handler) handleNextStep(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(store *session.Store) error {
		store.NextStep()
		return nil
	})
}

func (h *Handler) handlePrevStep(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(store *session.Store) error {
		store.PrevStep()
		return nil
	})
}

// handleSection exposes the record slice for one section kind: the step
// rendering surface. Front ends pair this with the step list to draw any
// step without knowing form-type specifics.
func (h *Handler) handleSection(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	record, err := h.service.Snapshot(id)
	if err != nil {
		writeError(w, err)
		return
	}

	section := formconfig.SectionKind(chi.URLParam(r, "section"))
	switch section {
	case formconfig.SectionIssuer:
		writeJSON(w, http.StatusOK, record.Issuer)
	case formconfig.SectionAmendment:
		writeJSON(w, http.StatusOK, record.Amendment)
	case formconfig.SectionOwners:
		writeJSON(w, http.StatusOK, record.ReportingOwners)
	case formconfig.SectionTransactions:
		writeJSON(w, http.StatusOK, map[string]any{
			"nonDerivative": record.NonDerivativeTransactions,
			"derivative":    record.DerivativeTransactions,
		})
	case formconfig.SectionHoldings:
		writeJSON(w, http.StatusOK, map[string]any{
			"nonDerivative": record.NonDerivativeHoldings,
			"derivative":    record.DerivativeHoldings,
		})
	case formconfig.SectionFootnotes:
		writeJSON(w, http.StatusOK, map[string]any{
			"footnotes": record.Footnotes,
			"remarks":   record.Remarks,
		})
	case formconfig.SectionReview:
		writeJSON(w, http.StatusOK, record)
	default:
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown section kind"))
	}
}

func (h *Handler) handleUpdateIssuer(w http.ResponseWriter, r *http.Request) {
	var patch models.IssuerPatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		store.UpdateIssuer(patch)
		return nil
	})
}

func (h *Handler) handleUpdateAmendment(w http.ResponseWriter, r *http.Request) {
	var patch models.AmendmentPatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		if err := validateAmendmentPatch(patch, time.Now()); err != nil {
			return err
		}
		store.UpdateAmendment(patch)
		return nil
	})
}

func (h *Handler) handleLookupIssuer(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req lookupEntityRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	outcome, err := h.service.LookupIssuer(r.Context(), id, req.CIK)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleLookupOwner(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req lookupEntityRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	outcome, err := h.service.LookupOwner(r.Context(), id, index, req.CIK)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleAddOwner(w http.ResponseWriter, r *http.Request) {
	var owner models.ReportingOwner
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &owner); err != nil {
			return err
		}
		if err := validateOwner(owner); err != nil {
			return err
		}
		return store.AddReportingOwner(owner)
	})
}

func (h *Handler) handleUpdateOwner(w http.ResponseWriter, r *http.Request) {
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch models.ReportingOwnerPatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		if err := validateOwnerPatch(patch); err != nil {
			return err
		}
		return store.UpdateReportingOwner(index, patch)
	})
}

func (h *Handler) handleRemoveOwner(w http.ResponseWriter, r *http.Request) {
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, r, func(store *session.Store) error {
		return store.RemoveReportingOwner(index)
	})
}

func (h *Handler) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var tx models.Transaction
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &tx); err != nil {
			return err
		}
		if err := validateTransaction(tx); err != nil {
			return err
		}
		return store.AddTransaction(kind, tx)
	})
}

func (h *Handler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch models.TransactionPatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		if err := validateTransactionPatch(patch); err != nil {
			return err
		}
		return store.UpdateTransaction(kind, index, patch)
	})
}

func (h *Handler) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, r, func(store *session.Store) error {
		return store.RemoveTransaction(kind, index)
	})
}

func (h *Handler) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var holding models.Holding
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &holding); err != nil {
			return err
		}
		if err := validateHolding(holding); err != nil {
			return err
		}
		return store.AddHolding(kind, holding)
	})
}

func (h *Handler) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch models.HoldingPatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		if err := validateHoldingPatch(patch); err != nil {
			return err
		}
		return store.UpdateHolding(kind, index, patch)
	})
}

func (h *Handler) handleRemoveHolding(w http.ResponseWriter, r *http.Request) {
	kind, err := h.kind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, r, func(store *session.Store) error {
		return store.RemoveHolding(kind, index)
	})
}

func (h *Handler) handleAddFootnote(w http.ResponseWriter, r *http.Request) {
	var footnote models.Footnote
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &footnote); err != nil {
			return err
		}
		return store.AddFootnote(footnote)
	})
}

func (h *Handler) handleUpdateFootnote(w http.ResponseWriter, r *http.Request) {
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var patch models.FootnotePatch
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &patch); err != nil {
			return err
		}
		return store.UpdateFootnote(index, patch)
	})
}

func (h *Handler) handleRemoveFootnote(w http.ResponseWriter, r *http.Request) {
	index, err := h.index(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, r, func(store *session.Store) error {
		return store.RemoveFootnote(index)
	})
}

func (h *Handler) handleUpdateRemarks(w http.ResponseWriter, r *http.Request) {
	var req remarksRequest
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &req); err != nil {
			return err
		}
		return store.UpdateRemarks(req.Remarks)
	})
}

func (h *Handler) handleSetAffirmation(w http.ResponseWriter, r *http.Request) {
	var req affirmationRequest
	h.mutate(w, r, func(store *session.Store) error {
		if err := h.decode(r, &req); err != nil {
			return err
		}
		store.SetAffirmation(req.Value)
		return nil
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.service.Validate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.service.Submit(r.Context(), id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidationFailed) {
			writeJSON(w, dErrors.ToHTTPStatus(dErrors.CodeValidationFailed), report)
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	draftID, err := h.service.SaveDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"draftId": draftID})
}

func (h *Handler) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req loadDraftRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	draftID, err := uuid.Parse(req.DraftID)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "draftId must be a UUID"))
		return
	}
	record, err := h.service.LoadDraft(r.Context(), id, draftID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// mutate runs one store operation for the session in the URL and renders the
// updated record, so clients always see committed state after each call.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Store) error) {
	id, err := h.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var snap models.FilingRecord
	err = h.service.Mutate(id, func(store *session.Store) error {
		if err := fn(store); err != nil {
			return err
		}
		snap = store.Snapshot()
		return nil
	})
	if err != nil {
		h.logger.WarnContext(r.Context(), "filing mutation rejected",
			"request_id", middleware.GetRequestID(r.Context()),
			"session_id", id,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) sessionID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "session id must be a UUID")
	}
	return id, nil
}

func (h *Handler) index(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "index must be an integer")
	}
	return index, nil
}

func (h *Handler) kind(r *http.Request) (models.Kind, error) {
	raw := chi.URLParam(r, "kind")
	kind, ok := models.ParseKind(raw)
	if !ok {
		return 0, dErrors.New(dErrors.CodeInvalidInput, `kind must be "nonDerivative" or "derivative"`)
	}
	return kind, nil
}

func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid request body")
	}
	return nil
}
