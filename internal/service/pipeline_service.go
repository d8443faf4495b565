package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type portalScraper interface {
	PageContext(ctx context.Context) (*models.PortalSession, error)
	Timetable(ctx context.Context, session *models.PortalSession, semesterID string) ([]models.RawScheduleEntry, error)
	ClassIDs(ctx context.Context, session *models.PortalSession, semesterID string) ([]string, error)
	DigitalAssignments(ctx context.Context, session *models.PortalSession, classIDs []string) (*models.RawAssignmentData, error)
}

type pipelineStateReader interface {
	SyncState(ctx context.Context) (*models.SyncState, error)
}

// PipelineService runs one full scrape-normalize-sync invocation. The
// timetable and assignment chains are independent: they share only the
// read-only portal session, and a failure in one never blocks the other or
// touches its snapshot. Retry happens by re-invoking the whole pipeline.
type PipelineService struct {
	scraper     portalScraper
	store       pipelineStateReader
	timetables  *TimetableService
	assignments *AssignmentService
	sync        *SyncService
	metrics     *MetricsService
	logger      *zap.Logger

	mu      sync.Mutex
	lastRun *models.SyncRunReport
}

// NewPipelineService constructs a PipelineService.
func NewPipelineService(scraper portalScraper, store pipelineStateReader, timetables *TimetableService, assignments *AssignmentService, syncSvc *SyncService, metrics *MetricsService, logger *zap.Logger) *PipelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineService{
		scraper:     scraper,
		store:       store,
		timetables:  timetables,
		assignments: assignments,
		sync:        syncSvc,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run executes one pipeline invocation. It aborts before any sync when no
// semester is selected or the portal session cannot be established; stored
// snapshots are never touched on a scrape failure.
func (s *PipelineService) Run(ctx context.Context) (*models.SyncRunReport, error) {
	if s.metrics != nil {
		s.metrics.RecordPipelineRun()
	}

	state, err := s.store.SyncState(ctx)
	if err != nil {
		return nil, err
	}
	if state.SemesterID == "" {
		return nil, appErrors.ErrNoSemester
	}

	session, err := s.scrapeContext(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.SyncRunReport{StartedAt: time.Now().UTC()}
	var reportMu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := s.runTimetableChain(ctx, session, state.SemesterID)
		reportMu.Lock()
		defer reportMu.Unlock()
		report.Timetable = result
		if err != nil {
			report.Errors = append(report.Errors, "timetable: "+err.Error())
		}
	}()
	go func() {
		defer wg.Done()
		result, err := s.runAssignmentChain(ctx, session, state.SemesterID)
		reportMu.Lock()
		defer reportMu.Unlock()
		report.Assignments = result
		if err != nil {
			report.Errors = append(report.Errors, "assignments: "+err.Error())
		}
	}()
	wg.Wait()

	report.FinishedAt = time.Now().UTC()

	s.mu.Lock()
	s.lastRun = report
	s.mu.Unlock()

	return report, nil
}

// LastRun returns the report of the most recent invocation, nil before the
// first one.
func (s *PipelineService) LastRun() *models.SyncRunReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *PipelineService) scrapeContext(ctx context.Context) (*models.PortalSession, error) {
	start := time.Now()
	session, err := s.scraper.PageContext(ctx)
	if s.metrics != nil {
		s.metrics.ObserveScrape("content", time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *PipelineService) runTimetableChain(ctx context.Context, session *models.PortalSession, semesterID string) (*models.SyncResult, error) {
	start := time.Now()
	entries, err := s.scraper.Timetable(ctx, session, semesterID)
	if s.metrics != nil {
		s.metrics.ObserveScrape("timetable", time.Since(start))
	}
	if err != nil {
		s.logger.Warn("timetable scrape failed, run aborted", zap.Error(err))
		return nil, err
	}

	fresh := s.timetables.Decode(entries)
	result, err := s.sync.SyncTimetable(ctx, fresh, session.AuthorizedID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PipelineService) runAssignmentChain(ctx context.Context, session *models.PortalSession, semesterID string) (*models.SyncResult, error) {
	start := time.Now()
	classIDs, err := s.scraper.ClassIDs(ctx, session, semesterID)
	if err != nil {
		s.logger.Warn("class id scrape failed, run aborted", zap.Error(err))
		return nil, err
	}
	raw, err := s.scraper.DigitalAssignments(ctx, session, classIDs)
	if s.metrics != nil {
		s.metrics.ObserveScrape("assignments", time.Since(start))
	}
	if err != nil {
		s.logger.Warn("assignment scrape failed, run aborted", zap.Error(err))
		return nil, err
	}

	fresh := s.assignments.Normalize(raw)
	if fresh == nil {
		return nil, appErrors.Clone(appErrors.ErrScrapeFailed, "assignment scrape produced no data")
	}

	result, err := s.sync.SyncAssignments(ctx, fresh, raw.RegNo)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
