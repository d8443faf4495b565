package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type semesterStoreStub struct {
	options     []models.SemesterOption
	setOptions  []models.SemesterOption
	currentID   string
	currentName string
}

func (s *semesterStoreStub) SemesterOptions(ctx context.Context) ([]models.SemesterOption, error) {
	return s.options, nil
}

func (s *semesterStoreStub) SetSemesterOptions(ctx context.Context, options []models.SemesterOption) error {
	s.setOptions = options
	return nil
}

func (s *semesterStoreStub) SetCurrentSemester(ctx context.Context, id, name string) error {
	s.currentID = id
	s.currentName = name
	return nil
}

type semesterScraperStub struct {
	options []models.SemesterOption
	err     error
	calls   int
}

func (s *semesterScraperStub) PageContext(ctx context.Context) (*models.PortalSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PortalSession{CSRFToken: "csrf", AuthorizedID: "21BCE0001"}, nil
}

func (s *semesterScraperStub) SemesterOptions(ctx context.Context, session *models.PortalSession) ([]models.SemesterOption, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.options, nil
}

type triggerStub struct {
	reasons []string
}

func (t *triggerStub) TriggerSync(reason string) error {
	t.reasons = append(t.reasons, reason)
	return nil
}

func semesterFixtures() []models.SemesterOption {
	return []models.SemesterOption{
		{ID: "VL2026271", Name: "Fall 2026-27"},
		{ID: "VL2025272", Name: "Winter 2025-26"},
	}
}

func TestOptionsServesCacheWithoutScraping(t *testing.T) {
	store := &semesterStoreStub{options: semesterFixtures()}
	scraper := &semesterScraperStub{}
	svc := NewSemesterService(store, scraper, nil, nil)

	options, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Zero(t, scraper.calls)
}

func TestOptionsRefreshesEmptyCache(t *testing.T) {
	store := &semesterStoreStub{}
	scraper := &semesterScraperStub{options: semesterFixtures()}
	svc := NewSemesterService(store, scraper, nil, nil)

	options, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Equal(t, 1, scraper.calls)
	assert.Equal(t, semesterFixtures(), store.setOptions)
}

func TestSelectUnknownSemester(t *testing.T) {
	store := &semesterStoreStub{options: semesterFixtures()}
	svc := NewSemesterService(store, &semesterScraperStub{}, nil, nil)

	_, err := svc.Select(context.Background(), "VL9999999")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound.Code))
	assert.Empty(t, store.currentID)
}

func TestSelectStoresAndTriggersSync(t *testing.T) {
	store := &semesterStoreStub{options: semesterFixtures()}
	trigger := &triggerStub{}
	svc := NewSemesterService(store, &semesterScraperStub{}, trigger, nil)

	selected, err := svc.Select(context.Background(), "VL2025272")
	require.NoError(t, err)
	assert.Equal(t, "Winter 2025-26", selected.Name)
	assert.Equal(t, "VL2025272", store.currentID)
	assert.Equal(t, "Winter 2025-26", store.currentName)
	assert.Equal(t, []string{"semester_selected"}, trigger.reasons)
}
