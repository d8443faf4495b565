package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

// stateClient is the subset of redis commands the repository issues.
// *redis.Client satisfies it.
type stateClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Storage keys, matching the key set the extension kept in local storage.
const (
	keyUID                 = "uid"
	keyEmail               = "email"
	keyRegNo               = "regNo"
	keyAuthToken           = "authToken"
	keyCurrentSemester     = "currentSemester"
	keyCurrentSemesterName = "currentSemesterName"
	keySemesterOptions     = "semesterOptions"
	keyPreviousTimetable   = "previousTimeTable"
	keyPreviousAssignments = "previousAssignments"
)

// sessionKeys are removed together on logout or session invalidation.
var sessionKeys = []string{
	keyUID,
	keyEmail,
	keyRegNo,
	keyAuthToken,
	keyCurrentSemester,
	keyCurrentSemesterName,
	keySemesterOptions,
	keyPreviousTimetable,
	keyPreviousAssignments,
}

// StateRepository persists session state and the last-synced snapshots in
// Redis. Snapshots are written as single JSON documents so replacement is
// atomic, never a field-level mutation.
type StateRepository struct {
	client stateClient
	logger *zap.Logger
}

// NewStateRepository constructs a state repository.
func NewStateRepository(client stateClient, logger *zap.Logger) *StateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepository{client: client, logger: logger}
}

// SyncState assembles the stored session. Missing keys yield zero values,
// not errors; callers decide whether an empty token is acceptable.
func (r *StateRepository) SyncState(ctx context.Context) (*models.SyncState, error) {
	values, err := r.client.MGet(ctx,
		keyUID, keyEmail, keyRegNo, keyAuthToken, keyCurrentSemester, keyCurrentSemesterName,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget session: %w", err)
	}

	str := func(i int) string {
		if s, ok := values[i].(string); ok {
			return s
		}
		return ""
	}
	return &models.SyncState{
		UID:          str(0),
		Email:        str(1),
		RegNo:        str(2),
		AuthToken:    str(3),
		SemesterID:   str(4),
		SemesterName: str(5),
	}, nil
}

// SaveSession stores the identity fields established at sign-in.
func (r *StateRepository) SaveSession(ctx context.Context, state *models.SyncState) error {
	if state == nil {
		return appErrors.Clone(appErrors.ErrValidation, "nil session state")
	}
	if err := r.client.MSet(ctx,
		keyUID, state.UID,
		keyEmail, state.Email,
		keyRegNo, state.RegNo,
		keyAuthToken, state.AuthToken,
	).Err(); err != nil {
		return fmt.Errorf("redis mset session: %w", err)
	}
	return nil
}

// ClearSession drops the whole session in one DEL: auth token, identity,
// semester selection and both cached snapshots.
func (r *StateRepository) ClearSession(ctx context.Context) error {
	if err := r.client.Del(ctx, sessionKeys...).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// SetCurrentSemester records the active semester id and display name.
func (r *StateRepository) SetCurrentSemester(ctx context.Context, id, name string) error {
	if err := r.client.MSet(ctx, keyCurrentSemester, id, keyCurrentSemesterName, name).Err(); err != nil {
		return fmt.Errorf("redis mset semester: %w", err)
	}
	return nil
}

// SemesterOptions returns the cached semester dropdown, nil when absent.
func (r *StateRepository) SemesterOptions(ctx context.Context) ([]models.SemesterOption, error) {
	var options []models.SemesterOption
	if err := r.getJSON(ctx, keySemesterOptions, &options); err != nil {
		if appErrors.Is(err, appErrors.ErrStateMiss.Code) {
			return nil, nil
		}
		return nil, err
	}
	return options, nil
}

// SetSemesterOptions caches the freshly scraped semester dropdown.
func (r *StateRepository) SetSemesterOptions(ctx context.Context, options []models.SemesterOption) error {
	return r.setJSON(ctx, keySemesterOptions, options)
}

// PreviousTimetable loads the last synced timetable snapshot, nil when no
// sync has succeeded yet.
func (r *StateRepository) PreviousTimetable(ctx context.Context) (models.WeeklyTimetable, error) {
	var tt models.WeeklyTimetable
	if err := r.getJSON(ctx, keyPreviousTimetable, &tt); err != nil {
		if appErrors.Is(err, appErrors.ErrStateMiss.Code) {
			return nil, nil
		}
		return nil, err
	}
	return tt, nil
}

// SetPreviousTimetable replaces the timetable snapshot.
func (r *StateRepository) SetPreviousTimetable(ctx context.Context, tt models.WeeklyTimetable) error {
	return r.setJSON(ctx, keyPreviousTimetable, tt)
}

// PreviousAssignments loads the last synced assignment snapshot, nil when
// no sync has succeeded yet.
func (r *StateRepository) PreviousAssignments(ctx context.Context) ([]models.CourseAssignments, error) {
	var classes []models.CourseAssignments
	if err := r.getJSON(ctx, keyPreviousAssignments, &classes); err != nil {
		if appErrors.Is(err, appErrors.ErrStateMiss.Code) {
			return nil, nil
		}
		return nil, err
	}
	return classes, nil
}

// SetPreviousAssignments replaces the assignment snapshot.
func (r *StateRepository) SetPreviousAssignments(ctx context.Context, classes []models.CourseAssignments) error {
	return r.setJSON(ctx, keyPreviousAssignments, classes)
}

func (r *StateRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrStateMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
