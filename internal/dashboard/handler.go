package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelterdesk/shelterdesk/internal/shared"
	"github.com/shelterdesk/shelterdesk/internal/view"
)

// Handler serves the widget dashboard pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	return &Handler{logger: logger, service: service, templates: templates}
}

// MountRoutes registers the dashboard endpoints. Mounted under /dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Post("/reset", h.Reset)
	r.Post("/widgets/{kind}/dock", h.ToggleDock)
	r.Post("/widgets/{kind}/move", h.Move)
	r.Post("/widgets/{kind}/resize", h.Resize)
}

// widgetView joins a placement with its registry entry for rendering.
type widgetView struct {
	Kind    WidgetKind
	Title   string
	Summary string
	Width   int
	Height  int
	Docked  bool
}

type pageData struct {
	Widgets []widgetView
}

// Show renders the user's dashboard.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	layout, err := h.service.Layout(r.Context(), sess.User())
	if err != nil {
		h.logger.Error("load dashboard layout", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	widgets := make([]widgetView, 0, len(layout.Placements))
	for _, p := range layout.Placements {
		def, ok := Definition(p.Kind)
		if !ok {
			continue
		}
		widgets = append(widgets, widgetView{
			Kind:    p.Kind,
			Title:   def.Title,
			Summary: def.Summary,
			Width:   p.Width,
			Height:  p.Height,
			Docked:  p.Docked,
		})
	}

	viewData := view.TemplateData{
		Title:       "Dashboard",
		CSRFToken:   sess.Get(shared.CSRFSessionKey),
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        pageData{Widgets: widgets},
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Reset discards the stored layout.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.Reset(r.Context(), sess.User()); err != nil {
		h.logger.Error("reset dashboard layout", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Dashboard reset"})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ToggleDock docks or undocks one widget.
func (h *Handler) ToggleDock(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID string, kind WidgetKind) error {
		return h.service.ToggleDock(r.Context(), userID, kind)
	})
}

// Move repositions one widget.
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.PostFormValue("position"))
	if err != nil {
		http.Error(w, "Invalid position", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(userID string, kind WidgetKind) error {
		return h.service.Move(r.Context(), userID, kind, position)
	})
}

// Resize changes one widget's grid span.
func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	width, errW := strconv.Atoi(r.PostFormValue("width"))
	height, errH := strconv.Atoi(r.PostFormValue("height"))
	if errW != nil || errH != nil {
		http.Error(w, "Invalid size", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(userID string, kind WidgetKind) error {
		return h.service.Resize(r.Context(), userID, kind, width, height)
	})
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op func(userID string, kind WidgetKind) error) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	kind := WidgetKind(chi.URLParam(r, "kind"))
	if err := op(sess.User(), kind); err != nil {
		var layoutErr *LayoutError
		if errors.As(err, &layoutErr) {
			http.Error(w, layoutErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("update dashboard layout", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*shared.Session, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return nil, false
	}
	return sess, true
}
