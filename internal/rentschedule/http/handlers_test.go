package schedulehttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
	"github.com/shelterdesk/shelterdesk/internal/shared"
	"github.com/shelterdesk/shelterdesk/internal/view"
	_ "github.com/shelterdesk/shelterdesk/testing"
)

type fakeScheduleService struct {
	doc rentschedule.Document
	err error
}

func (f *fakeScheduleService) Load(ctx context.Context, propertyID int64) (rentschedule.Document, error) {
	if f.err != nil {
		return rentschedule.Document{}, f.err
	}
	return f.doc, nil
}

func (f *fakeScheduleService) RenderSections(doc rentschedule.Document, state *rentschedule.ViewState) []rentschedule.SectionView {
	if state == nil {
		state = rentschedule.NewViewState()
	}
	var views []rentschedule.SectionView
	for _, t := range state.VisibleSections() {
		section, ok := doc.Sections.ByType(t)
		if !ok {
			continue
		}
		var items []rentschedule.DisplayItem
		if state.ViewMode == rentschedule.ViewModeEasyRead {
			items = rentschedule.GroupItems(section.Items, rentschedule.DefaultGroupRules, true)
		} else {
			items = rentschedule.DisplayItems(section.Items)
		}
		views = append(views, rentschedule.SectionView{Section: section, Items: items, Expanded: state.SectionExpanded(t)})
	}
	return views
}

func (f *fakeScheduleService) Totals(doc rentschedule.Document) rentschedule.Totals {
	return rentschedule.ComputeTotals(doc)
}

func newTestRouter(t *testing.T, service ScheduleService) chi.Router {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	handler := NewHandler(nil, service, engine, nil)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func loggedInSession(t *testing.T) *shared.Session {
	t.Helper()
	sess := &shared.Session{}
	sess.SetUser("resident-1")
	return sess
}

func doRequest(r chi.Router, sess *shared.Session, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sess != nil {
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestScheduleViewRequiresLogin(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})

	rec := doRequest(r, nil, http.MethodGet, "/properties/1/schedule/", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestScheduleViewRendersDocument(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})

	rec := doRequest(r, loggedInSession(t), http.MethodGet, "/properties/1/schedule/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Woodhurst House")
	assert.Contains(t, body, "£533.83")
	assert.Contains(t, body, "£403.44")
	assert.Contains(t, body, "£130.39")
	// All three sections expanded by default.
	assert.Contains(t, body, "Base rent")
	assert.Contains(t, body, "Personal heating")
}

func TestScheduleViewUnknownProperty(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{err: shared.ErrNotFound})

	rec := doRequest(r, loggedInSession(t), http.MethodGet, "/properties/42/schedule/", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleViewBadPropertyID(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})

	rec := doRequest(r, loggedInSession(t), http.MethodGet, "/properties/nope/schedule/", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewModePersistsToSession(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)

	rec := doRequest(r, sess, http.MethodPost, "/properties/1/schedule/view-mode",
		url.Values{"mode": {"easyRead"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/properties/1/schedule", rec.Header().Get("Location"))

	var state rentschedule.ViewState
	require.NoError(t, json.Unmarshal([]byte(sess.Get("schedule_view:1")), &state))
	assert.Equal(t, rentschedule.ViewModeEasyRead, state.ViewMode)
}

func TestUnknownViewModeIgnored(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)

	rec := doRequest(r, sess, http.MethodPost, "/properties/1/schedule/view-mode",
		url.Values{"mode": {"sideways"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	var state rentschedule.ViewState
	require.NoError(t, json.Unmarshal([]byte(sess.Get("schedule_view:1")), &state))
	assert.Equal(t, rentschedule.ViewModeNormal, state.ViewMode)
}

func TestToggleSectionCollapses(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)

	rec := doRequest(r, sess, http.MethodPost, "/properties/1/schedule/sections/coreRent/toggle", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var state rentschedule.ViewState
	require.NoError(t, json.Unmarshal([]byte(sess.Get("schedule_view:1")), &state))
	assert.False(t, state.SectionExpanded(rentschedule.SectionCoreRent))
	assert.True(t, state.SectionExpanded(rentschedule.SectionEligibleCharges))

	// A second toggle restores the default.
	doRequest(r, sess, http.MethodPost, "/properties/1/schedule/sections/coreRent/toggle", url.Values{})
	require.NoError(t, json.Unmarshal([]byte(sess.Get("schedule_view:1")), &state))
	assert.True(t, state.SectionExpanded(rentschedule.SectionCoreRent))
}

func TestFilterHidesSections(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)

	rec := doRequest(r, sess, http.MethodPost, "/properties/1/schedule/filter",
		url.Values{"filter": {"core"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = doRequest(r, sess, http.MethodGet, "/properties/1/schedule/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Base rent")
	assert.NotContains(t, body, "Personal heating")
}

func TestCorruptViewStateFallsBackToDefaults(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)
	sess.Set("schedule_view:1", "{definitely not json")

	rec := doRequest(r, sess, http.MethodGet, "/properties/1/schedule/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Base rent")
	assert.Contains(t, body, "Personal heating")
}

func TestCSVExport(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})

	rec := doRequest(r, loggedInSession(t), http.MethodGet, "/properties/1/schedule/export.csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "rent-schedule-1.csv")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "Section,Item,Category,Weekly Amount"))
	assert.Contains(t, body, "Gross weekly rent,,533.83")
}

func TestExportRateLimited(t *testing.T) {
	r := newTestRouter(t, &fakeScheduleService{doc: rentschedule.WoodhurstFixture()})
	sess := loggedInSession(t)

	var last int
	for i := 0; i < 12; i++ {
		rec := doRequest(r, sess, http.MethodGet, "/properties/1/schedule/export.csv", nil)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
