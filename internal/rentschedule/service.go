package rentschedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Repository loads rent schedule documents from storage.
type Repository interface {
	Document(ctx context.Context, propertyID int64) (Document, error)
	PropertyIDs(ctx context.Context) ([]int64, error)
}

// SectionView pairs a section with its render-ready items and expansion state.
type SectionView struct {
	Section  Section
	Items    []DisplayItem
	Expanded bool
}

// Service coordinates document loading, validation, caching and the per-render
// transform pipeline.
type Service struct {
	repo   Repository
	cache  *Cache
	rules  []GroupRule
	logger *slog.Logger
}

// NewService wires a Repository with a Cache helper. The group rule table is
// checked against the closed category set up front so a typo'd rule fails at
// startup instead of silently never matching.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) (*Service, error) {
	if err := ValidateRules(DefaultGroupRules); err != nil {
		return nil, err
	}
	return &Service{repo: repo, cache: cache, rules: DefaultGroupRules, logger: logger}, nil
}

// Load fetches a validated document for the property, via cache when possible.
func (s *Service) Load(ctx context.Context, propertyID int64) (Document, error) {
	key, err := s.cache.BuildKey(ctx, keyDocument(propertyID))
	if err != nil {
		return Document{}, err
	}
	var doc Document
	err = s.cache.FetchJSON(ctx, key, &doc, func(ctx context.Context) (interface{}, error) {
		loaded, err := s.repo.Document(ctx, propertyID)
		if err != nil {
			return nil, err
		}
		if err := ValidateDocument(loaded); err != nil {
			return nil, fmt.Errorf("load schedule for property %d: %w", propertyID, err)
		}
		return loaded, nil
	})
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Invalidate drops cached documents after schedule data changes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// RenderSections resolves the view state against a document: which sections
// are visible, and for each whether the raw items or the grouped simple-view
// items are shown. The document itself is never mutated.
func (s *Service) RenderSections(doc Document, state *ViewState) []SectionView {
	if state == nil {
		state = NewViewState()
	}
	visible := state.VisibleSections()
	views := make([]SectionView, 0, len(visible))
	for _, t := range visible {
		section, ok := doc.Sections.ByType(t)
		if !ok {
			continue
		}
		var items []DisplayItem
		if state.ViewMode == ViewModeEasyRead {
			items = GroupItems(section.Items, s.rules, true)
		} else {
			items = DisplayItems(section.Items)
		}
		views = append(views, SectionView{
			Section:  section,
			Items:    items,
			Expanded: state.SectionExpanded(t),
		})
	}
	return views
}

// Totals recomputes the weekly totals for the document.
func (s *Service) Totals(doc Document) Totals {
	return ComputeTotals(doc)
}

// Warm preloads every stored schedule into the cache so the first page view
// after a deploy or cache bump does not pay the Postgres round trip. Failures
// on one property do not stop the others.
func (s *Service) Warm(ctx context.Context) (int, error) {
	ids, err := s.repo.PropertyIDs(ctx)
	if err != nil {
		return 0, err
	}
	var warmed atomic.Int64
	var mu sync.Mutex
	var firstErr error
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.Load(gctx, id); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("property %d: %w", id, err)
				}
				mu.Unlock()
				if s.logger != nil {
					s.logger.Warn("cache warmup", slog.Int64("property_id", id), slog.Any("error", err))
				}
				return nil
			}
			warmed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(warmed.Load()), firstErr
}

// DriftReport records one property whose stored schedule failed revalidation.
type DriftReport struct {
	PropertyID int64
	Err        error
}

// Scan walks every stored document, recomputes its subtotals and totals, and
// reports integrity drift without mutating anything. Used by the background
// integrity job.
func (s *Service) Scan(ctx context.Context) (int, []DriftReport) {
	ids, err := s.repo.PropertyIDs(ctx)
	if err != nil {
		return 0, []DriftReport{{Err: err}}
	}
	var drift []DriftReport
	for _, id := range ids {
		doc, err := s.repo.Document(ctx, id)
		if err != nil {
			drift = append(drift, DriftReport{PropertyID: id, Err: fmt.Errorf("property %d: %w", id, err)})
			continue
		}
		if err := ValidateDocument(doc); err != nil {
			if s.logger != nil {
				s.logger.Warn("schedule integrity drift",
					slog.Int64("property_id", id),
					slog.Any("error", err))
			}
			drift = append(drift, DriftReport{PropertyID: id, Err: fmt.Errorf("property %d: %w", id, err)})
		}
	}
	return len(ids), drift
}
