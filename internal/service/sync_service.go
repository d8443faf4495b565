package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type syncStateStore interface {
	SyncState(ctx context.Context) (*models.SyncState, error)
	PreviousTimetable(ctx context.Context) (models.WeeklyTimetable, error)
	SetPreviousTimetable(ctx context.Context, tt models.WeeklyTimetable) error
	PreviousAssignments(ctx context.Context) ([]models.CourseAssignments, error)
	SetPreviousAssignments(ctx context.Context, classes []models.CourseAssignments) error
	ClearSession(ctx context.Context) error
}

type syncPusher interface {
	SetTimetable(ctx context.Context, token string, payload dto.SetTimetableRequest) error
	SetAssignments(ctx context.Context, token string, payload dto.SetAssignmentsRequest) error
}

// SyncService is the sync gate: it compares a fresh snapshot with the last
// synced one, pushes only on change, and persists the snapshot only after a
// successful push. A 403 from the backend invalidates the whole session.
type SyncService struct {
	store    syncStateStore
	pusher   syncPusher
	notifier Notifier
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSyncService constructs a SyncService.
func NewSyncService(store syncStateStore, pusher syncPusher, notifier Notifier, metrics *MetricsService, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		store:    store,
		pusher:   pusher,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// SyncTimetable runs one gate decision for the timetable kind. scrapedID is
// the identity the portal session answered for; it must match the stored
// account before anything is pushed under its name.
func (s *SyncService) SyncTimetable(ctx context.Context, fresh models.WeeklyTimetable, scrapedID string) (models.SyncResult, error) {
	result := models.SyncResult{Kind: models.KindTimetable}

	previous, err := s.store.PreviousTimetable(ctx)
	if err != nil {
		return result, s.failed(result.Kind, "state_read", err)
	}
	if EqualTimetables(fresh, previous) {
		s.recordSkip(result.Kind)
		s.logger.Debug("timetable unchanged, skipping push")
		return result, nil
	}

	state, err := s.authorize(ctx, result.Kind, scrapedID)
	if err != nil {
		return result, err
	}

	payload := dto.SetTimetableRequest{
		UID:          state.UID,
		SemesterID:   state.SemesterID,
		SemesterName: state.SemesterName,
		Timetable:    fresh,
	}
	if err := s.pusher.SetTimetable(ctx, state.AuthToken, payload); err != nil {
		return result, s.pushError(ctx, result.Kind, err)
	}
	if err := s.store.SetPreviousTimetable(ctx, fresh); err != nil {
		return result, s.failed(result.Kind, "persist", err)
	}

	result.Pushed = true
	s.completed(result.Kind)
	return result, nil
}

// SyncAssignments runs one gate decision for the assignments kind.
func (s *SyncService) SyncAssignments(ctx context.Context, fresh []models.CourseAssignments, scrapedID string) (models.SyncResult, error) {
	result := models.SyncResult{Kind: models.KindAssignments}

	previous, err := s.store.PreviousAssignments(ctx)
	if err != nil {
		return result, s.failed(result.Kind, "state_read", err)
	}
	if EqualAssignments(fresh, previous) {
		s.recordSkip(result.Kind)
		s.logger.Debug("assignments unchanged, skipping push")
		return result, nil
	}

	state, err := s.authorize(ctx, result.Kind, scrapedID)
	if err != nil {
		return result, err
	}

	payload := dto.SetAssignmentsRequest{
		UID:          state.UID,
		SemesterID:   state.SemesterID,
		SemesterName: state.SemesterName,
		Classes:      fresh,
	}
	if err := s.pusher.SetAssignments(ctx, state.AuthToken, payload); err != nil {
		return result, s.pushError(ctx, result.Kind, err)
	}
	if err := s.store.SetPreviousAssignments(ctx, fresh); err != nil {
		return result, s.failed(result.Kind, "persist", err)
	}

	result.Pushed = true
	s.completed(result.Kind)
	return result, nil
}

// authorize loads the session and rejects a push without a token or with a
// portal identity that does not match the stored account. An identity
// mismatch means a stale browser session would push data under the wrong
// name, so the whole session is invalidated.
func (s *SyncService) authorize(ctx context.Context, kind models.SyncKind, scrapedID string) (*models.SyncState, error) {
	state, err := s.store.SyncState(ctx)
	if err != nil {
		return nil, s.failed(kind, "state_read", err)
	}
	if state.AuthToken == "" {
		err := appErrors.Clone(appErrors.ErrSessionExpired, "no auth token, sign in required")
		return nil, s.failed(kind, "unauthenticated", err)
	}
	if scrapedID != "" && state.RegNo != "" && scrapedID != state.RegNo {
		s.logger.Warn("portal identity mismatch, invalidating session",
			zap.String("portal_id", scrapedID), zap.String("account_id", state.RegNo))
		if clearErr := s.store.ClearSession(ctx); clearErr != nil {
			s.logger.Error("failed to clear session", zap.Error(clearErr))
		}
		err := appErrors.Clone(appErrors.ErrSessionExpired, "portal identity does not match the signed-in account")
		return nil, s.failed(kind, "identity_mismatch", err)
	}
	return state, nil
}

// pushError maps a push failure. Only a 403 tears the session down; any
// other failure leaves it intact so a later run can retry without a fresh
// sign-in.
func (s *SyncService) pushError(ctx context.Context, kind models.SyncKind, err error) error {
	if appErrors.Is(err, appErrors.ErrSessionExpired.Code) {
		if clearErr := s.store.ClearSession(ctx); clearErr != nil {
			s.logger.Error("failed to clear session", zap.Error(clearErr))
		}
		return s.failed(kind, "forbidden", err)
	}
	return s.failed(kind, "upstream", err)
}

func (s *SyncService) completed(kind models.SyncKind) {
	if s.metrics != nil {
		s.metrics.RecordPush(kind)
	}
	if s.notifier != nil {
		s.notifier.SyncCompleted(kind)
	}
}

func (s *SyncService) recordSkip(kind models.SyncKind) {
	if s.metrics != nil {
		s.metrics.RecordSkip(kind)
	}
}

func (s *SyncService) failed(kind models.SyncKind, reason string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordFailure(kind, reason)
	}
	if s.notifier != nil {
		s.notifier.SyncFailed(kind, reason)
	}
	return err
}
