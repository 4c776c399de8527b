package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/metrics"
	"debtster-collections/internal/repository"
	"debtster-collections/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type DebtorService interface {
	Create(ctx context.Context, in domain.DebtorInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Debtor, error)
	List(ctx context.Context) ([]domain.Debtor, error)
	Update(ctx context.Context, id int64, in domain.DebtorInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type InstrumentService interface {
	Create(ctx context.Context, in domain.InstrumentInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Instrument, error)
	List(ctx context.Context) ([]domain.Instrument, error)
	Update(ctx context.Context, id int64, in domain.InstrumentInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	RecalculateInterest(ctx context.Context, id int64) (*domain.Instrument, bool, error)
}

type PaymentService interface {
	Create(ctx context.Context, in domain.PaymentInput) (int64, error)
	List(ctx context.Context, f repository.PaymentsFilter) ([]domain.Payment, error)
}

type ProcessStageService interface {
	Create(ctx context.Context, in domain.ProcessStageInput) (int64, error)
	List(ctx context.Context, f repository.ProcessStagesFilter) ([]domain.ProcessStage, error)
}

type StatisticsService interface {
	Statistics(ctx context.Context) (domain.Statistics, error)
	Counts(ctx context.Context) (repository.TableCounts, error)
}

type SearchService interface {
	Search(ctx context.Context, q string, target domain.SearchTarget) (any, error)
}

type ExportService interface {
	Dump(ctx context.Context) (*service.Dump, error)
	StartWorkbookExport(ctx context.Context, sheets []string) (*service.ExportStatus, error)
	ListJobs(ctx context.Context) ([]service.ExportStatus, error)
	GetJob(ctx context.Context, id string) (*service.ExportStatus, error)
}

// FileResolver maps a saved export file name to a path on disk.
type FileResolver interface {
	Path(fileName string) (string, error)
}

type WebSocketHub interface {
	HandleWebSocket(w http.ResponseWriter, r *http.Request, topic string)
}

type Services struct {
	Debtors       DebtorService
	Instruments   InstrumentService
	Payments      PaymentService
	ProcessStages ProcessStageService
	Statistics    StatisticsService
	Search        SearchService
	Export        ExportService
}

type Options struct {
	Debug   bool
	Service string
	Version string

	// Files and Hub are optional; their routes are only mounted when set.
	Files        FileResolver
	FilesPrefix  string
	Hub          WebSocketHub
	RequestLimit time.Duration
}

type Handler struct {
	debtors       DebtorService
	instruments   InstrumentService
	payments      PaymentService
	processStages ProcessStageService
	statistics    StatisticsService
	search        SearchService
	export        ExportService

	files       FileResolver
	filesPrefix string
	hub         WebSocketHub

	debug   bool
	service string
	version string
	timeout time.Duration
}

func NewHandler(s Services, opts Options) *Handler {
	h := &Handler{
		debtors:       s.Debtors,
		instruments:   s.Instruments,
		payments:      s.Payments,
		processStages: s.ProcessStages,
		statistics:    s.Statistics,
		search:        s.Search,
		export:        s.Export,

		files:       opts.Files,
		filesPrefix: opts.FilesPrefix,
		hub:         opts.Hub,

		debug:   opts.Debug,
		service: opts.Service,
		version: opts.Version,
		timeout: opts.RequestLimit,
	}
	if h.service == "" {
		h.service = "debt-collections-api"
	}
	if h.filesPrefix == "" {
		h.filesPrefix = "/files"
	}
	if h.timeout <= 0 {
		h.timeout = 60 * time.Second
	}
	return h
}

var endpoints = []string{
	"GET    /api/debtors",
	"POST   /api/debtors",
	"GET    /api/debtors/{id}",
	"PUT    /api/debtors/{id}",
	"DELETE /api/debtors/{id}",
	"GET    /api/instruments",
	"POST   /api/instruments",
	"GET    /api/instruments/{id}",
	"PUT    /api/instruments/{id}",
	"DELETE /api/instruments/{id}",
	"POST   /api/instruments/{id}/interest",
	"GET    /api/payments",
	"POST   /api/payments",
	"GET    /api/process-stages",
	"POST   /api/process-stages",
	"GET    /api/search?q=&type=debtors|instruments",
	"GET    /api/statistics",
	"GET    /api/export",
	"POST   /api/export/xlsx",
	"GET    /api/export/jobs",
	"GET    /api/export/jobs/{id}",
	"GET    /api/status",
}

func (h *Handler) InitRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		metrics.Middleware,
		h.recoverer,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrorNotFound(w, fmt.Sprintf("route %s %s not found", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	r.Handle("/metrics", metrics.Handler())
	if h.files != nil {
		r.Get(h.filesPrefix+"/{file}", h.serveFile)
	}
	if h.hub != nil {
		// no request timeout: the connection outlives the handler
		r.Get("/ws", h.serveWebSocket)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))

		r.Get("/", h.status)

		r.Route("/api", func(r chi.Router) {
			r.Get("/status", h.status)

			r.Route("/debtors", func(r chi.Router) {
				r.Get("/", h.listDebtors)
				r.Post("/", h.createDebtor)
				r.Get("/{id}", h.getDebtor)
				r.Put("/{id}", h.updateDebtor)
				r.Delete("/{id}", h.deleteDebtor)
			})

			r.Route("/instruments", func(r chi.Router) {
				r.Get("/", h.listInstruments)
				r.Post("/", h.createInstrument)
				r.Get("/{id}", h.getInstrument)
				r.Put("/{id}", h.updateInstrument)
				r.Delete("/{id}", h.deleteInstrument)
				r.Post("/{id}/interest", h.recalculateInterest)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.listPayments)
				r.Post("/", h.createPayment)
			})

			r.Route("/process-stages", func(r chi.Router) {
				r.Get("/", h.listProcessStages)
				r.Post("/", h.createProcessStage)
			})

			r.Get("/search", h.searchRecords)
			r.Get("/statistics", h.getStatistics)

			r.Route("/export", func(r chi.Router) {
				r.Get("/", h.dump)
				r.Post("/xlsx", h.startWorkbookExport)
				r.Get("/jobs", h.listExportJobs)
				r.Get("/jobs/{id}", h.getExportJob)
			})
		})
	})

	return r
}

// recoverer turns panics into the uniform 500 envelope.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("[HTTP] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			msg := "internal server error"
			if h.debug {
				msg = fmt.Sprint(rec)
			}
			ErrorInternal(w, msg)
		}()
		next.ServeHTTP(w, r)
	})
}

type statusResponse struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Endpoints []string               `json:"endpoints"`
	Counts    repository.TableCounts `json:"counts"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	counts, err := h.statistics.Counts(r.Context())
	if err != nil {
		h.writeError(w, r, "status", err)
		return
	}

	Success(w, "", statusResponse{
		Status:    "online",
		Service:   h.service,
		Version:   h.version,
		Endpoints: endpoints,
		Counts:    counts,
	})
}
