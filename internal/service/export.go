package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"debtster-collections/internal/clients"
	"debtster-collections/internal/domain"
	"debtster-collections/internal/metrics"
	"debtster-collections/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ExportCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SAdd(ctx context.Context, key string, members ...any) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...any) error
}

// FileStore persists finished workbooks and hands out download links.
type FileStore interface {
	Save(ctx context.Context, fileName string, data []byte) (string, error)
	URL(ctx context.Context, saved string) (string, error)
}

type ExportNotifier interface {
	NotifyExportProgress(ctx context.Context, exportID string, progress float64, stage string) error
	NotifyExportComplete(ctx context.Context, exportID, url, fileName string) error
	NotifyExportFailed(ctx context.Context, exportID, errMsg string) error
}

type ExportSources struct {
	Debtors       DebtorRepository
	Instruments   InstrumentRepository
	Payments      PaymentRepository
	ProcessStages ProcessStageRepository
}

// Dump is every table in full, as served by GET /api/export.
type Dump struct {
	Debtors       []domain.Debtor       `json:"debtors"`
	Instruments   []domain.Instrument   `json:"instruments"`
	Payments      []domain.Payment      `json:"payments"`
	ProcessStages []domain.ProcessStage `json:"process_stages"`
}

const (
	StageQueued     = "queued"
	StageGenerating = "generating"
	StageUploading  = "uploading"
	StageReady      = "ready"
	StageFailed     = "failed"
)

type ExportStatus struct {
	ID       string    `json:"id"`
	Sheets   []string  `json:"sheets"`
	Progress float64   `json:"progress"`
	Stage    string    `json:"stage"`
	FileName *string   `json:"file_name"`
	FileURL  *string   `json:"file_url"`
	Error    *string   `json:"error"`
	Created  time.Time `json:"created_at"`
}

const (
	exportSetKey = "export_ids"
	exportTTL    = 20 * time.Minute
	jobTimeout   = 10 * time.Minute
)

func exportKey(id string) string {
	return "exports:" + id
}

type ExportService struct {
	src      ExportSources
	cache    ExportCache
	files    FileStore
	notifier ExportNotifier
	now      func() time.Time

	wg sync.WaitGroup
}

// NewExportService wires the dump and workbook jobs. cache, files and notifier
// may be nil; without cache or files the workbook jobs are unavailable.
func NewExportService(src ExportSources, cache ExportCache, files FileStore, notifier ExportNotifier) *ExportService {
	return &ExportService{
		src:      src,
		cache:    cache,
		files:    files,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *ExportService) Dump(ctx context.Context) (*Dump, error) {
	var d Dump
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Debtors, err = s.src.Debtors.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Instruments, err = s.src.Instruments.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Payments, err = s.src.Payments.List(gctx, repository.PaymentsFilter{})
		return err
	})
	g.Go(func() (err error) {
		d.ProcessStages, err = s.src.ProcessStages.List(gctx, repository.ProcessStagesFilter{})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *ExportService) jobsEnabled() error {
	if s.cache == nil || s.files == nil {
		return domain.InternalError("export jobs not configured", nil)
	}
	return nil
}

// StartWorkbookExport validates the requested sheets, records a queued job and
// builds the workbook in the background. An empty selection exports every sheet.
func (s *ExportService) StartWorkbookExport(ctx context.Context, sheets []string) (*ExportStatus, error) {
	if err := s.jobsEnabled(); err != nil {
		return nil, err
	}

	selected, err := selectSheets(sheets)
	if err != nil {
		return nil, err
	}

	status := &ExportStatus{
		ID:      uuid.NewString(),
		Sheets:  selected,
		Stage:   StageQueued,
		Created: s.now(),
	}
	if err := s.saveStatus(ctx, status); err != nil {
		return nil, domain.InternalError("failed to register export", err)
	}

	job := *status
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		s.runWorkbookExport(jobCtx, &job)
	}()
	metrics.ExportJob("started")

	return status, nil
}

// Wait blocks until every running workbook job has finished.
func (s *ExportService) Wait() {
	s.wg.Wait()
}

func (s *ExportService) runWorkbookExport(ctx context.Context, status *ExportStatus) {
	fail := func(msg string, err error) {
		log.Printf("[EXPORT] job %s failed: %s: %v", status.ID, msg, err)
		status.Stage = StageFailed
		status.Error = &msg
		metrics.ExportJob(StageFailed)
		_ = s.saveStatus(ctx, status)
		if s.notifier != nil {
			_ = s.notifier.NotifyExportFailed(ctx, status.ID, msg)
		}
	}

	dump, err := s.Dump(ctx)
	if err != nil {
		fail("failed to read records", err)
		return
	}

	report := func(progress float64, stage string) {
		status.Progress = progress
		status.Stage = stage
		_ = s.saveStatus(ctx, status)
		if s.notifier != nil {
			_ = s.notifier.NotifyExportProgress(ctx, status.ID, progress, stage)
		}
	}

	data, err := buildWorkbook(dump, status.Sheets, func(p float64) { report(p, StageGenerating) })
	if err != nil {
		fail("failed to build workbook", err)
		return
	}

	// 100 is reserved for when the link is ready
	report(95, StageUploading)

	fileName := workbookFileName(status.ID, s.now())
	saved, err := s.files.Save(ctx, fileName, data)
	if err != nil {
		fail("failed to store workbook", err)
		return
	}
	url, err := s.files.URL(ctx, saved)
	if err != nil {
		fail("failed to build download link", err)
		return
	}

	status.FileName = &saved
	status.FileURL = &url
	report(100, StageReady)
	if s.notifier != nil {
		_ = s.notifier.NotifyExportComplete(ctx, status.ID, url, saved)
	}
	metrics.ExportJob(StageReady)
	log.Printf("[EXPORT] job %s ready: %s", status.ID, saved)
}

// workbookFileName embeds the job id so jobs started in the same second never
// share a storage key.
func workbookFileName(id string, at time.Time) string {
	return fmt.Sprintf("export_%s_%s.xlsx", id, at.Format("20060102_150405"))
}

func (s *ExportService) saveStatus(ctx context.Context, st *ExportStatus) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, exportKey(st.ID), string(data), exportTTL); err != nil {
		return err
	}
	return s.cache.SAdd(ctx, exportSetKey, st.ID)
}

func (s *ExportService) loadStatus(ctx context.Context, id string) (*ExportStatus, error) {
	raw, err := s.cache.Get(ctx, exportKey(id))
	if err != nil {
		return nil, err
	}
	var st ExportStatus
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("parse export status: %w", err)
	}
	return &st, nil
}

// ListJobs returns the jobs that have not expired yet, newest first.
func (s *ExportService) ListJobs(ctx context.Context) ([]ExportStatus, error) {
	if err := s.jobsEnabled(); err != nil {
		return nil, err
	}

	ids, err := s.cache.SMembers(ctx, exportSetKey)
	if err != nil {
		return nil, domain.InternalError("failed to list exports", err)
	}

	jobs := make([]ExportStatus, 0, len(ids))
	var expired []any
	for _, id := range ids {
		st, err := s.loadStatus(ctx, id)
		if errors.Is(err, clients.ErrCacheMiss) {
			expired = append(expired, id)
			continue
		}
		if err != nil {
			log.Printf("[EXPORT] skipping export %s: %v", id, err)
			continue
		}
		jobs = append(jobs, *st)
	}

	if len(expired) > 0 {
		if err := s.cache.SRem(ctx, exportSetKey, expired...); err != nil {
			log.Printf("[EXPORT] failed to prune expired exports: %v", err)
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Created.After(jobs[j].Created)
	})
	return jobs, nil
}

func (s *ExportService) GetJob(ctx context.Context, id string) (*ExportStatus, error) {
	if err := s.jobsEnabled(); err != nil {
		return nil, err
	}

	st, err := s.loadStatus(ctx, strings.TrimSpace(id))
	if errors.Is(err, clients.ErrCacheMiss) {
		return nil, domain.NotFoundError("export not found")
	}
	if err != nil {
		return nil, domain.InternalError("failed to read export", err)
	}
	return st, nil
}
