package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"

	"github.com/shelterdesk/shelterdesk/internal/shared"
)

// Service manages per-user widget layouts.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Layout loads the user's layout, falling back to the default when nothing is
// stored or the stored document cannot be decoded.
func (s *Service) Layout(ctx context.Context, userID string) (Layout, error) {
	raw, err := s.repo.Layout(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return DefaultLayout(), nil
		}
		return Layout{}, err
	}

	var layout Layout
	if err := json.Unmarshal(raw, &layout); err != nil {
		s.warn(userID, "corrupt dashboard layout, using default", err)
		return DefaultLayout(), nil
	}
	if err := layout.Validate(); err != nil {
		s.warn(userID, "invalid dashboard layout, using default", err)
		return DefaultLayout(), nil
	}
	sort.SliceStable(layout.Placements, func(i, j int) bool {
		return layout.Placements[i].Position < layout.Placements[j].Position
	})
	return layout, nil
}

// Save validates and persists a layout.
func (s *Service) Save(ctx context.Context, userID string, layout Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	return s.repo.SaveLayout(ctx, userID, data)
}

// Reset discards the stored layout so the default applies again.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.repo.DeleteLayout(ctx, userID)
}

// ToggleDock flips the docked flag on one widget and persists the layout.
func (s *Service) ToggleDock(ctx context.Context, userID string, kind WidgetKind) error {
	if !KnownKind(kind) {
		return &LayoutError{Kind: kind, Reason: "unknown widget kind"}
	}
	layout, err := s.Layout(ctx, userID)
	if err != nil {
		return err
	}
	for i := range layout.Placements {
		if layout.Placements[i].Kind == kind {
			layout.Placements[i].Docked = !layout.Placements[i].Docked
			return s.Save(ctx, userID, layout)
		}
	}
	return &LayoutError{Kind: kind, Reason: "not in layout"}
}

// Move places a widget at a new position, shifting the others.
func (s *Service) Move(ctx context.Context, userID string, kind WidgetKind, position int) error {
	layout, err := s.Layout(ctx, userID)
	if err != nil {
		return err
	}

	from := -1
	for i, p := range layout.Placements {
		if p.Kind == kind {
			from = i
			break
		}
	}
	if from == -1 {
		return &LayoutError{Kind: kind, Reason: "not in layout"}
	}
	if position < 0 {
		position = 0
	}
	if position >= len(layout.Placements) {
		position = len(layout.Placements) - 1
	}

	moved := layout.Placements[from]
	rest := append(layout.Placements[:from:from], layout.Placements[from+1:]...)
	placements := make([]Placement, 0, len(layout.Placements))
	placements = append(placements, rest[:position]...)
	placements = append(placements, moved)
	placements = append(placements, rest[position:]...)
	for i := range placements {
		placements[i].Position = i
	}
	layout.Placements = placements
	return s.Save(ctx, userID, layout)
}

// Resize sets a widget's grid span.
func (s *Service) Resize(ctx context.Context, userID string, kind WidgetKind, width, height int) error {
	layout, err := s.Layout(ctx, userID)
	if err != nil {
		return err
	}
	for i := range layout.Placements {
		if layout.Placements[i].Kind == kind {
			layout.Placements[i].Width = width
			layout.Placements[i].Height = height
			return s.Save(ctx, userID, layout)
		}
	}
	return &LayoutError{Kind: kind, Reason: "not in layout"}
}

func (s *Service) warn(userID, msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.String("user_id", userID), slog.Any("error", err))
	}
}
