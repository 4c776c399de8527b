package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"debtster-collections/internal/clients"
	"debtster-collections/internal/config"
	"debtster-collections/internal/repository"
	"debtster-collections/internal/service"
	"debtster-collections/internal/transport/rest"
	"debtster-collections/internal/transport/websocket"
	"debtster-collections/pkg/database/postgres"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env or defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	db := mustInitPostgres(ctx, cfg.Postgres)
	defer postgres.Close(db)

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("[DB] migrate error: %v", err)
	}
	if cfg.Seed {
		n, err := repository.Seed(ctx, db)
		if err != nil {
			log.Fatalf("[DB] seed error: %v", err)
		}
		if n > 0 {
			log.Printf("[DB] seeded %d demo debtors", n)
		}
	}

	// Export jobs need both a status cache and a file store; either may be
	// missing, in which case only the JSON dump is served.
	var cache service.ExportCache
	if cfg.Redis.Enabled {
		redisClient, err := initRedis(cfg.Redis)
		if err != nil {
			log.Printf("[EXPORT] redis unavailable, export jobs disabled: %v", err)
		} else {
			defer redisClient.Close()
			cache = redisClient
		}
	}

	var (
		files       service.FileStore
		fileServing rest.FileResolver
		local       *clients.StorageClient
	)
	switch cfg.Storage.Driver {
	case "s3":
		s3Client, err := clients.NewS3Client(ctx, clients.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			URLTTL:          cfg.S3.URLTTL,
		})
		if err != nil {
			log.Fatalf("s3 init error: %v", err)
		}
		files = s3Client
	default:
		storageClient, err := clients.NewLocalStorage(cfg.Storage.ExportDir, cfg.Storage.PublicPrefix, cfg.Storage.ExternalURL)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		files = storageClient
		fileServing = storageClient
		local = storageClient
	}

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)
	wsClient := clients.NewWebSocketClient(wsHub)

	debtorRepo := repository.NewDebtorRepository(db)
	instrumentRepo := repository.NewInstrumentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	stageRepo := repository.NewProcessStageRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	debtorSvc := service.NewDebtorService(debtorRepo)
	instrumentSvc := service.NewInstrumentService(instrumentRepo, service.InstrumentConfig{
		Types:       cfg.InstrumentTypes,
		DefaultRate: cfg.DefaultRate,
	}, time.Now)
	paymentSvc := service.NewPaymentService(paymentRepo)
	stageSvc := service.NewProcessStageService(stageRepo)
	statsSvc := service.NewStatisticsService(statsRepo, cfg.UpcomingWindowDays, time.Now)
	searchSvc := service.NewSearchService(debtorRepo, instrumentRepo)
	exportSvc := service.NewExportService(service.ExportSources{
		Debtors:       debtorRepo,
		Instruments:   instrumentRepo,
		Payments:      paymentRepo,
		ProcessStages: stageRepo,
	}, cache, files, wsClient)

	handler := rest.NewHandler(rest.Services{
		Debtors:       debtorSvc,
		Instruments:   instrumentSvc,
		Payments:      paymentSvc,
		ProcessStages: stageSvc,
		Statistics:    statsSvc,
		Search:        searchSvc,
		Export:        exportSvc,
	}, rest.Options{
		Debug:       cfg.Debug,
		Version:     cfg.Version,
		Files:       fileServing,
		FilesPrefix: cfg.Storage.PublicPrefix,
		Hub:         wsHub,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rest.WithCORS(handler.InitRouter()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	if local != nil {
		go runFileCleaner(ctx, local, cfg.Storage.MaxFileAge)
	}

	select {
	case err := <-srvErr:
		if err != nil {
			log.Fatalf("[HTTP] server error: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[HTTP] shutdown error: %v", err)
		}

		// let running workbook jobs record their final status
		exportSvc.Wait()

		log.Println("shutdown complete")
	}
}

func mustInitPostgres(ctx context.Context, cfg config.PostgresConfig) *sql.DB {
	db, err := postgres.NewPostgresConnection(ctx, postgres.ConnectionInfo{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Username:        cfg.User,
		DBName:          cfg.DBName,
		SSLMode:         cfg.SSLMode,
		Password:        cfg.Password,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("postgres init error: %v", err)
	}
	return db
}

func initRedis(cfg config.RedisConfig) (*clients.RedisClient, error) {
	return clients.NewRedisClient(clients.RedisConfig{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: time.Duration(cfg.DialTimeout) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Prefix:      cfg.Prefix,
	})
}

// runFileCleaner removes exported files older than maxAge every five minutes.
func runFileCleaner(ctx context.Context, storage *clients.StorageClient, maxAge time.Duration) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := storage.CleanupOlderThan(maxAge)
			if err != nil {
				log.Printf("[EXPORT] storage cleanup error: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[EXPORT] removed %d expired files", n)
			}
		}
	}
}
