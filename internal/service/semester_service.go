package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type semesterStateStore interface {
	SemesterOptions(ctx context.Context) ([]models.SemesterOption, error)
	SetSemesterOptions(ctx context.Context, options []models.SemesterOption) error
	SetCurrentSemester(ctx context.Context, id, name string) error
}

type semesterScraper interface {
	PageContext(ctx context.Context) (*models.PortalSession, error)
	SemesterOptions(ctx context.Context, session *models.PortalSession) ([]models.SemesterOption, error)
}

// SyncTrigger enqueues a pipeline run. Selecting a semester triggers an
// immediate sync of its data.
type SyncTrigger interface {
	TriggerSync(reason string) error
}

// SemesterService manages the semester dropdown cache and the active
// semester selection.
type SemesterService struct {
	store   semesterStateStore
	scraper semesterScraper
	trigger SyncTrigger
	logger  *zap.Logger
}

// NewSemesterService constructs a SemesterService.
func NewSemesterService(store semesterStateStore, scraper semesterScraper, trigger SyncTrigger, logger *zap.Logger) *SemesterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SemesterService{store: store, scraper: scraper, trigger: trigger, logger: logger}
}

// Options returns the cached semester dropdown, refreshing it from the
// portal when the cache is empty.
func (s *SemesterService) Options(ctx context.Context) ([]models.SemesterOption, error) {
	options, err := s.store.SemesterOptions(ctx)
	if err != nil {
		return nil, err
	}
	if len(options) > 0 {
		return options, nil
	}
	return s.Refresh(ctx)
}

// Refresh scrapes the semester dropdown and replaces the cache.
func (s *SemesterService) Refresh(ctx context.Context) ([]models.SemesterOption, error) {
	session, err := s.scraper.PageContext(ctx)
	if err != nil {
		return nil, err
	}
	options, err := s.scraper.SemesterOptions(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetSemesterOptions(ctx, options); err != nil {
		return nil, err
	}
	return options, nil
}

// Select makes the given semester current and triggers an immediate sync
// run for it.
func (s *SemesterService) Select(ctx context.Context, id string) (*models.SemesterOption, error) {
	options, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}

	var selected *models.SemesterOption
	for i := range options {
		if options[i].ID == id {
			selected = &options[i]
			break
		}
	}
	if selected == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown semester id")
	}

	if err := s.store.SetCurrentSemester(ctx, selected.ID, selected.Name); err != nil {
		return nil, err
	}
	s.logger.Info("semester selected", zap.String("id", selected.ID), zap.String("name", selected.Name))

	if s.trigger != nil {
		if err := s.trigger.TriggerSync("semester_selected"); err != nil {
			s.logger.Warn("failed to trigger sync after semester change", zap.Error(err))
		}
	}
	return selected, nil
}
