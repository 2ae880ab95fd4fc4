package rentschedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	_ "github.com/shelterdesk/shelterdesk/testing"
)

type mockRepo struct {
	mu       sync.Mutex
	docs     map[int64]Document
	docCalls int
}

func (m *mockRepo) Document(ctx context.Context, propertyID int64) (Document, error) {
	m.mu.Lock()
	m.docCalls++
	m.mu.Unlock()
	doc, ok := m.docs[propertyID]
	if !ok {
		return Document{}, errors.New("no such property")
	}
	return doc, nil
}

func (m *mockRepo) PropertyIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc, err := NewService(repo, cache, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestLoadCachesDocument(t *testing.T) {
	repo := &mockRepo{docs: map[int64]Document{1: WoodhurstFixture()}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	doc, err := svc.Load(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PropertyName != "Woodhurst House" {
		t.Fatalf("unexpected document: %+v", doc.PropertyName)
	}
	if repo.docCalls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.docCalls)
	}

	// Second call should hit cache.
	if _, err := svc.Load(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.docCalls != 1 {
		t.Fatalf("expected cache hit, got %d repo calls", repo.docCalls)
	}

	// Bump invalidates.
	if err := svc.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Load(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.docCalls != 2 {
		t.Fatalf("expected reload after bump, got %d repo calls", repo.docCalls)
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	corrupt := WoodhurstFixture()
	corrupt.Totals.GrossWeeklyRent = 1
	repo := &mockRepo{docs: map[int64]Document{1: corrupt}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	_, err := svc.Load(context.Background(), 1)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError got %v", err)
	}
}

func TestRenderSectionsModeAndFilter(t *testing.T) {
	repo := &mockRepo{docs: map[int64]Document{1: WoodhurstFixture()}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	doc := WoodhurstFixture()

	state := NewViewState()
	views := svc.RenderSections(doc, state)
	if len(views) != 3 {
		t.Fatalf("expected 3 sections got %d", len(views))
	}
	// Normal mode renders raw items.
	if got := len(views[1].Items); got != len(doc.Sections.EligibleCharges.Items) {
		t.Fatalf("expected raw items in normal mode, got %d", got)
	}

	state.SetViewMode(ViewModeEasyRead)
	views = svc.RenderSections(doc, state)
	if got := len(views[1].Items); got >= len(doc.Sections.EligibleCharges.Items) {
		t.Fatalf("easy read should merge items, got %d", got)
	}
	if !views[1].Items[0].IsGrouped {
		t.Fatalf("expected grouped leading item, got %+v", views[1].Items[0])
	}

	state.SetShowFilter(FilterCore)
	views = svc.RenderSections(doc, state)
	if len(views) != 1 || views[0].Section.Type != SectionCoreRent {
		t.Fatalf("filter core should render only core rent, got %+v", views)
	}

	state.SetShowFilter(FilterBills)
	views = svc.RenderSections(doc, state)
	if len(views) != 1 || views[0].Section.Type != SectionIneligible {
		t.Fatalf("filter bills should render only ineligible services, got %+v", views)
	}
}

func TestScanReportsDrift(t *testing.T) {
	good := WoodhurstFixture()
	bad := WoodhurstFixture()
	bad.PropertyID = 2
	bad.Sections.EligibleCharges.Subtotal += 5

	repo := &mockRepo{docs: map[int64]Document{1: good, 2: bad}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	scanned, drift := svc.Scan(context.Background())
	if scanned != 2 {
		t.Fatalf("expected 2 documents scanned, got %d", scanned)
	}
	if len(drift) != 1 {
		t.Fatalf("expected 1 drift report, got %v", drift)
	}
	if drift[0].PropertyID != 2 {
		t.Fatalf("expected drift on property 2, got %d", drift[0].PropertyID)
	}
}

func TestWarmFillsCache(t *testing.T) {
	docs := map[int64]Document{}
	for id := int64(1); id <= 5; id++ {
		doc := WoodhurstFixture()
		doc.PropertyID = id
		docs[id] = doc
	}
	repo := &mockRepo{docs: docs}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	warmed, err := svc.Warm(ctx)
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if warmed != 5 {
		t.Fatalf("expected 5 warmed, got %d", warmed)
	}

	// Subsequent loads should all be cache hits.
	before := repo.docCalls
	for id := int64(1); id <= 5; id++ {
		if _, err := svc.Load(ctx, id); err != nil {
			t.Fatalf("load %d: %v", id, err)
		}
	}
	if repo.docCalls != before {
		t.Fatalf("expected cache hits, repo calls went %d -> %d", before, repo.docCalls)
	}
}

func TestWarmReportsFirstFailure(t *testing.T) {
	corrupt := WoodhurstFixture()
	corrupt.PropertyID = 2
	corrupt.Totals.GrossWeeklyRent = 1

	repo := &mockRepo{docs: map[int64]Document{1: WoodhurstFixture(), 2: corrupt}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	warmed, err := svc.Warm(context.Background())
	if warmed != 1 {
		t.Fatalf("expected 1 warmed, got %d", warmed)
	}
	if err == nil {
		t.Fatal("expected an error for the corrupt schedule")
	}
}
