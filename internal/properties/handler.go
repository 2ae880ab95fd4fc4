package properties

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/shelterdesk/shelterdesk/internal/shared"
	"github.com/shelterdesk/shelterdesk/internal/view"
)

// Handler serves the property hub pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	validator *validator.Validate
}

// NewHandler constructs the property hub handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		validator: validator.New(),
	}
}

// MountRoutes registers the property hub endpoints. The router mounts this
// under /properties; schedule routes hang off the parent router so the two
// modules stay decoupled.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.NewForm)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Get("/{id}/edit", h.EditForm)
	r.Post("/{id}", h.Update)
}

type listData struct {
	Search     string
	Properties []Property
	Pagination shared.Pagination
}

type detailData struct {
	Property Property
}

type formData struct {
	Property Property
	Errors   map[string]string
	Action   string
}

// List renders the searchable property listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	filters := ListFilters{
		Search:  strings.TrimSpace(r.URL.Query().Get("q")),
		Page:    page,
		PerPage: 20,
	}

	props, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list properties failed", slog.Any("error", err))
		http.Error(w, "Failed to load properties", http.StatusInternalServerError)
		return
	}

	h.render(w, r, sess, "pages/properties_list.html", "Property Hub", listData{
		Search:     filters.Search,
		Properties: props,
		Pagination: shared.NewPagination(filters.Page, filters.PerPage, total),
	})
}

// Show renders a single property.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get property failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, sess, "pages/properties_detail.html", property.Name, detailData{Property: property})
}

// NewForm renders the blank creation form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	h.render(w, r, sess, "pages/properties_form.html", "New property", formData{
		Action: "/properties",
	})
}

// Create validates and stores a new property.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	form, property := h.parseForm(r)
	if fieldErrors := h.validateForm(form); len(fieldErrors) > 0 {
		h.render(w, r, sess, "pages/properties_form.html", "New property", formData{
			Property: property,
			Errors:   fieldErrors,
			Action:   "/properties",
		})
		return
	}

	created, err := h.service.Create(r.Context(), property)
	if err != nil {
		h.logger.Error("create property failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Property created"})
	http.Redirect(w, r, "/properties/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}

// EditForm renders the edit form pre-filled with the stored property.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("get property failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, sess, "pages/properties_form.html", "Edit property", formData{
		Property: property,
		Action:   "/properties/" + strconv.FormatInt(id, 10),
	})
}

// Update validates and overwrites a property.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	form, property := h.parseForm(r)
	property.ID = id
	if fieldErrors := h.validateForm(form); len(fieldErrors) > 0 {
		h.render(w, r, sess, "pages/properties_form.html", "Edit property", formData{
			Property: property,
			Errors:   fieldErrors,
			Action:   "/properties/" + strconv.FormatInt(id, 10),
		})
		return
	}

	if err := h.service.Update(r.Context(), id, property); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("update property failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Property updated"})
	http.Redirect(w, r, "/properties/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *Handler) parseForm(r *http.Request) (PropertyForm, Property) {
	units, _ := strconv.Atoi(r.PostFormValue("units"))
	form := PropertyForm{
		Code:       strings.TrimSpace(r.PostFormValue("code")),
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		SchemeType: strings.TrimSpace(r.PostFormValue("scheme_type")),
		Address:    strings.TrimSpace(r.PostFormValue("address")),
		Units:      units,
		Notes:      strings.TrimSpace(r.PostFormValue("notes")),
	}
	property := Property{
		Code:       form.Code,
		Name:       form.Name,
		SchemeType: form.SchemeType,
		Address:    form.Address,
		Units:      form.Units,
		Notes:      form.Notes,
	}
	return form, property
}

func (h *Handler) validateForm(form PropertyForm) map[string]string {
	err := h.validator.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	} else {
		fieldErrors["form"] = "invalid input"
	}
	return fieldErrors
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	case "gte":
		return "must be at least " + err.Param()
	case "lte":
		return "must be at most " + err.Param()
	default:
		return "is invalid"
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

func (h *Handler) render(w http.ResponseWriter, r *http.Request, sess *shared.Session, page, title string, data any) {
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   sess.Get(shared.CSRFSessionKey),
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render failed", slog.String("template", page), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
