package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type syncStoreStub struct {
	state       *models.SyncState
	prevTT      models.WeeklyTimetable
	prevClasses []models.CourseAssignments

	savedTT      models.WeeklyTimetable
	savedClasses []models.CourseAssignments
	cleared      bool
	readErr      error
}

func (s *syncStoreStub) SyncState(ctx context.Context) (*models.SyncState, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.state == nil {
		return &models.SyncState{}, nil
	}
	return s.state, nil
}

func (s *syncStoreStub) PreviousTimetable(ctx context.Context) (models.WeeklyTimetable, error) {
	return s.prevTT, nil
}

func (s *syncStoreStub) SetPreviousTimetable(ctx context.Context, tt models.WeeklyTimetable) error {
	s.savedTT = tt
	return nil
}

func (s *syncStoreStub) PreviousAssignments(ctx context.Context) ([]models.CourseAssignments, error) {
	return s.prevClasses, nil
}

func (s *syncStoreStub) SetPreviousAssignments(ctx context.Context, classes []models.CourseAssignments) error {
	s.savedClasses = classes
	return nil
}

func (s *syncStoreStub) ClearSession(ctx context.Context) error {
	s.cleared = true
	return nil
}

type syncPusherStub struct {
	timetableCalls   int
	assignmentCalls  int
	lastTimetable    dto.SetTimetableRequest
	lastAssignments  dto.SetAssignmentsRequest
	err              error
}

func (p *syncPusherStub) SetTimetable(ctx context.Context, token string, payload dto.SetTimetableRequest) error {
	p.timetableCalls++
	p.lastTimetable = payload
	return p.err
}

func (p *syncPusherStub) SetAssignments(ctx context.Context, token string, payload dto.SetAssignmentsRequest) error {
	p.assignmentCalls++
	p.lastAssignments = payload
	return p.err
}

type notifierStub struct {
	completed []models.SyncKind
	failed    []string
}

func (n *notifierStub) SyncCompleted(kind models.SyncKind) {
	n.completed = append(n.completed, kind)
}

func (n *notifierStub) SyncFailed(kind models.SyncKind, reason string) {
	n.failed = append(n.failed, string(kind)+":"+reason)
}

func signedInState() *models.SyncState {
	return &models.SyncState{
		UID:          "uid-1",
		Email:        "student@vitstudent.ac.in",
		RegNo:        "21BCE0001",
		AuthToken:    "token-1",
		SemesterID:   "VL2026271",
		SemesterName: "Fall 2026-27",
	}
}

func TestSyncTimetableSkipsWhenUnchanged(t *testing.T) {
	store := &syncStoreStub{state: signedInState(), prevTT: sampleTimetable()}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	result, err := svc.SyncTimetable(context.Background(), sampleTimetable(), "21BCE0001")
	require.NoError(t, err)
	assert.False(t, result.Pushed)
	assert.Zero(t, pusher.timetableCalls)
	assert.Nil(t, store.savedTT)
}

func TestSyncTimetablePushesOnChange(t *testing.T) {
	store := &syncStoreStub{state: signedInState(), prevTT: sampleTimetable()}
	pusher := &syncPusherStub{}
	notifier := &notifierStub{}
	svc := NewSyncService(store, pusher, notifier, nil, nil)

	fresh := sampleTimetable()
	fresh[models.Friday] = append(fresh[models.Friday], models.ScheduledSession{
		Type: models.SessionTheory, SubjectName: "Ethics", Timing: "10:00 AM - 10:50 AM", Location: "LH104", SlotNumber: "TA1",
	})

	result, err := svc.SyncTimetable(context.Background(), fresh, "21BCE0001")
	require.NoError(t, err)
	assert.True(t, result.Pushed)
	assert.Equal(t, 1, pusher.timetableCalls)
	assert.Equal(t, "uid-1", pusher.lastTimetable.UID)
	assert.Equal(t, "VL2026271", pusher.lastTimetable.SemesterID)
	assert.True(t, EqualTimetables(fresh, store.savedTT))
	assert.Equal(t, []models.SyncKind{models.KindTimetable}, notifier.completed)
}

func TestSyncTimetableFirstRunAlwaysPushes(t *testing.T) {
	// No previous snapshot means the comparison is unknown, never equal.
	store := &syncStoreStub{state: signedInState()}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	result, err := svc.SyncTimetable(context.Background(), sampleTimetable(), "21BCE0001")
	require.NoError(t, err)
	assert.True(t, result.Pushed)
}

func TestSyncTimetableWithoutTokenMakesNoNetworkCall(t *testing.T) {
	state := signedInState()
	state.AuthToken = ""
	store := &syncStoreStub{state: state}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	_, err := svc.SyncTimetable(context.Background(), sampleTimetable(), "21BCE0001")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired.Code))
	assert.Zero(t, pusher.timetableCalls)
	assert.False(t, store.cleared)
}

func TestSyncTimetableIdentityMismatchInvalidatesSession(t *testing.T) {
	store := &syncStoreStub{state: signedInState()}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	_, err := svc.SyncTimetable(context.Background(), sampleTimetable(), "21BCE9999")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired.Code))
	assert.True(t, store.cleared)
	assert.Zero(t, pusher.timetableCalls)
}

func TestSyncTimetableForbiddenClearsSessionKeepsSnapshot(t *testing.T) {
	store := &syncStoreStub{state: signedInState(), prevTT: sampleTimetable()}
	pusher := &syncPusherStub{err: appErrors.Clone(appErrors.ErrSessionExpired, "")}
	notifier := &notifierStub{}
	svc := NewSyncService(store, pusher, notifier, nil, nil)

	fresh := models.NewWeeklyTimetable()
	_, err := svc.SyncTimetable(context.Background(), fresh, "21BCE0001")
	require.Error(t, err)
	assert.True(t, store.cleared)
	assert.Nil(t, store.savedTT)
	assert.Equal(t, []string{"timetable:forbidden"}, notifier.failed)
}

func TestSyncTimetableUpstreamErrorLeavesSessionIntact(t *testing.T) {
	store := &syncStoreStub{state: signedInState()}
	pusher := &syncPusherStub{err: errors.New("boom")}
	notifier := &notifierStub{}
	svc := NewSyncService(store, pusher, notifier, nil, nil)

	_, err := svc.SyncTimetable(context.Background(), sampleTimetable(), "21BCE0001")
	require.Error(t, err)
	assert.False(t, store.cleared)
	assert.Nil(t, store.savedTT)
	assert.Equal(t, []string{"timetable:upstream"}, notifier.failed)
}

func TestSyncAssignmentsSkipsWhenUnchanged(t *testing.T) {
	store := &syncStoreStub{state: signedInState(), prevClasses: sampleAssignments()}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	result, err := svc.SyncAssignments(context.Background(), sampleAssignments(), "21BCE0001")
	require.NoError(t, err)
	assert.False(t, result.Pushed)
	assert.Zero(t, pusher.assignmentCalls)
}

func TestSyncAssignmentsPushesAndPersists(t *testing.T) {
	store := &syncStoreStub{state: signedInState(), prevClasses: sampleAssignments()}
	pusher := &syncPusherStub{}
	svc := NewSyncService(store, pusher, nil, nil, nil)

	fresh := sampleAssignments()
	fresh[0].CourseAssignments[0].DateDue = "30-Sep-2026"

	result, err := svc.SyncAssignments(context.Background(), fresh, "21BCE0001")
	require.NoError(t, err)
	assert.True(t, result.Pushed)
	assert.Equal(t, 1, pusher.assignmentCalls)
	assert.True(t, EqualAssignments(fresh, store.savedClasses))
}
