package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// redisStub is an in-memory stand-in for the redis command subset the
// repository uses, answering through real go-redis command values.
type redisStub struct {
	data    map[string]string
	deleted []string
}

func newRedisStub() *redisStub {
	return &redisStub{data: map[string]string{}}
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func (s *redisStub) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if v, ok := s.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (s *redisStub) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.data[key] = asString(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (s *redisStub) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	values := make([]interface{}, len(keys))
	for i, key := range keys {
		if v, ok := s.data[key]; ok {
			values[i] = v
		}
	}
	cmd := redis.NewSliceCmd(ctx)
	cmd.SetVal(values)
	return cmd
}

func (s *redisStub) MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd {
	for i := 0; i+1 < len(values); i += 2 {
		s.data[asString(values[i])] = asString(values[i+1])
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (s *redisStub) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(s.data, key)
		s.deleted = append(s.deleted, key)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestSessionRoundTrip(t *testing.T) {
	stub := newRedisStub()
	repo := NewStateRepository(stub, nil)
	ctx := context.Background()

	in := &models.SyncState{
		UID:       "uid-1",
		Email:     "student@vitstudent.ac.in",
		RegNo:     "21BCE0001",
		AuthToken: "jwt-token",
	}
	require.NoError(t, repo.SaveSession(ctx, in))
	require.NoError(t, repo.SetCurrentSemester(ctx, "VL2026271", "Fall 2026-27"))

	out, err := repo.SyncState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", out.UID)
	assert.Equal(t, "jwt-token", out.AuthToken)
	assert.Equal(t, "VL2026271", out.SemesterID)
	assert.Equal(t, "Fall 2026-27", out.SemesterName)
}

func TestSyncStateEmptyStore(t *testing.T) {
	repo := NewStateRepository(newRedisStub(), nil)

	out, err := repo.SyncState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.SyncState{}, out)
}

func TestSnapshotRoundTrip(t *testing.T) {
	stub := newRedisStub()
	repo := NewStateRepository(stub, nil)
	ctx := context.Background()

	tt := models.NewWeeklyTimetable()
	tt[models.Monday] = []models.ScheduledSession{
		{Type: models.SessionTheory, SubjectName: "OS", Timing: "8:00 AM - 8:50 AM", Location: "LH101", SlotNumber: "A1"},
	}
	require.NoError(t, repo.SetPreviousTimetable(ctx, tt))

	loaded, err := repo.PreviousTimetable(ctx)
	require.NoError(t, err)
	assert.Equal(t, tt, loaded)

	classes := []models.CourseAssignments{{
		ClassID: "CS2001", CourseCode: "CSE2001", CourseTitle: "Algorithms",
		CourseAssignments: []models.Assignment{
			{AssessmentTitle: "DA-1", DateDue: "15-Sep-2026", Status: models.StatusUpcoming},
		},
	}}
	require.NoError(t, repo.SetPreviousAssignments(ctx, classes))

	loadedClasses, err := repo.PreviousAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, classes, loadedClasses)
}

func TestMissingSnapshotsAreNil(t *testing.T) {
	repo := NewStateRepository(newRedisStub(), nil)
	ctx := context.Background()

	tt, err := repo.PreviousTimetable(ctx)
	require.NoError(t, err)
	assert.Nil(t, tt)

	classes, err := repo.PreviousAssignments(ctx)
	require.NoError(t, err)
	assert.Nil(t, classes)

	options, err := repo.SemesterOptions(ctx)
	require.NoError(t, err)
	assert.Nil(t, options)
}

func TestSemesterOptionsRoundTrip(t *testing.T) {
	repo := NewStateRepository(newRedisStub(), nil)
	ctx := context.Background()

	in := []models.SemesterOption{
		{ID: "VL2026271", Name: "Fall 2026-27"},
		{ID: "VL2025272", Name: "Winter 2025-26"},
	}
	require.NoError(t, repo.SetSemesterOptions(ctx, in))

	out, err := repo.SemesterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestClearSessionDropsEveryKey(t *testing.T) {
	stub := newRedisStub()
	repo := NewStateRepository(stub, nil)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, &models.SyncState{UID: "uid-1", AuthToken: "jwt"}))
	require.NoError(t, repo.SetCurrentSemester(ctx, "VL2026271", "Fall 2026-27"))
	require.NoError(t, repo.SetPreviousTimetable(ctx, models.NewWeeklyTimetable()))

	require.NoError(t, repo.ClearSession(ctx))
	assert.Empty(t, stub.data)
	assert.ElementsMatch(t, sessionKeys, stub.deleted)

	state, err := repo.SyncState(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.AuthToken)
}
