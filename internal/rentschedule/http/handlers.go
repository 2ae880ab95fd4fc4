package schedulehttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule/export"
	"github.com/shelterdesk/shelterdesk/internal/shared"
	"github.com/shelterdesk/shelterdesk/internal/view"
)

const requestTimeout = 2 * time.Second

// ScheduleService defines the schedule data contract used by the handler.
type ScheduleService interface {
	Load(ctx context.Context, propertyID int64) (rentschedule.Document, error)
	RenderSections(doc rentschedule.Document, state *rentschedule.ViewState) []rentschedule.SectionView
	Totals(doc rentschedule.Document) rentschedule.Totals
}

// PDFService renders a schedule document to PDF bytes.
type PDFService interface {
	RenderSchedule(ctx context.Context, doc rentschedule.Document) ([]byte, error)
}

// Handler coordinates HTTP requests for the rent schedule viewer.
type Handler struct {
	logger    *slog.Logger
	service   ScheduleService
	templates *view.Engine
	pdf       PDFService
}

// NewHandler constructs the schedule HTTP handler.
func NewHandler(logger *slog.Logger, service ScheduleService, templates *view.Engine, pdf PDFService) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, pdf: pdf}
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	propertyID, err := parsePropertyID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doc, err := h.service.Load(ctx, propertyID)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	state := h.loadViewState(sess, propertyID)
	views := h.service.RenderSections(doc, state)
	totals := h.service.Totals(doc)
	vm := buildViewModel(doc, state, views, totals)

	csrfToken := sess.Get(shared.CSRFSessionKey)
	flash := sess.PopFlash()
	viewData := view.TemplateData{
		Title:       "Rent schedule — " + doc.PropertyName,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/schedule.html", viewData); err != nil {
		h.handleServerError(w, "render schedule", err)
	}
}

func (h *Handler) handleViewMode(w http.ResponseWriter, r *http.Request) {
	h.mutateViewState(w, r, func(state *rentschedule.ViewState) {
		state.SetViewMode(rentschedule.ViewMode(r.PostFormValue("mode")))
	})
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	h.mutateViewState(w, r, func(state *rentschedule.ViewState) {
		state.SetShowFilter(rentschedule.SectionFilter(r.PostFormValue("filter")))
	})
}

func (h *Handler) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	sectionID := rentschedule.SectionType(chi.URLParam(r, "sectionID"))
	h.mutateViewState(w, r, func(state *rentschedule.ViewState) {
		state.ToggleSection(sectionID)
	})
}

func (h *Handler) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	h.mutateViewState(w, r, func(state *rentschedule.ViewState) {
		state.ToggleItem(itemID)
	})
}

func (h *Handler) mutateViewState(w http.ResponseWriter, r *http.Request, mutate func(*rentschedule.ViewState)) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	propertyID, err := parsePropertyID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	state := h.loadViewState(sess, propertyID)
	mutate(state)
	h.saveViewState(sess, propertyID, state)

	http.Redirect(w, r, fmt.Sprintf("/properties/%d/schedule", propertyID), http.StatusSeeOther)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	propertyID, err := parsePropertyID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doc, err := h.service.Load(ctx, propertyID)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	filename := fmt.Sprintf("rent-schedule-%d.csv", propertyID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteScheduleCSV(w, doc); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if h.pdf == nil {
		h.handleServerError(w, "pdf exporter", errors.New("pdf exporter not configured"))
		return
	}
	propertyID, err := parsePropertyID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	doc, err := h.service.Load(ctx, propertyID)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	pdfBytes, err := h.pdf.RenderSchedule(ctx, doc)
	if err != nil {
		h.handleServerError(w, "render pdf", err)
		return
	}

	filename := fmt.Sprintf("rent-schedule-%d.pdf", propertyID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream pdf", err)
	}
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*shared.Session, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return nil, false
	}
	return sess, true
}

func (h *Handler) respondLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	var integrity *rentschedule.DataIntegrityError
	var invalid *rentschedule.InvalidLineItemError
	if errors.As(err, &integrity) || errors.As(err, &invalid) {
		h.logError("schedule failed integrity checks", err)
		http.Error(w, "Rent schedule data is inconsistent", http.StatusUnprocessableEntity)
		return
	}
	h.handleServerError(w, "load schedule", err)
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

func parsePropertyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "propertyID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid property id")
	}
	return id, nil
}

func viewStateKey(propertyID int64) string {
	return "schedule_view:" + strconv.FormatInt(propertyID, 10)
}

// loadViewState restores the viewer state from the session. A missing or
// corrupt entry falls back to the defaults.
func (h *Handler) loadViewState(sess *shared.Session, propertyID int64) *rentschedule.ViewState {
	raw := sess.Get(viewStateKey(propertyID))
	if raw == "" {
		return rentschedule.NewViewState()
	}
	var state rentschedule.ViewState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		if h.logger != nil {
			h.logger.Warn("corrupt view state, using defaults",
				slog.Int64("property_id", propertyID),
				slog.Any("error", err))
		}
		return rentschedule.NewViewState()
	}
	if state.ViewMode == "" || state.ShowFilter == "" {
		return rentschedule.NewViewState()
	}
	return &state
}

func (h *Handler) saveViewState(sess *shared.Session, propertyID int64, state *rentschedule.ViewState) {
	data, err := json.Marshal(state)
	if err != nil {
		h.logError("marshal view state", err)
		return
	}
	sess.Set(viewStateKey(propertyID), string(data))
}
