package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"surfsup-server/internal/config"
	db "surfsup-server/internal/db"
	httpapi "surfsup-server/internal/httpapi"
	"surfsup-server/internal/migrate"
	climate "surfsup-server/internal/modules/climate"
	"surfsup-server/internal/modules/climate/store"
	climateviews "surfsup-server/internal/modules/climate/views"
	"surfsup-server/internal/observability/metrics"
)

func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.SQLitePath,
		"dbReadOnly", cfg.ReadOnly,
		"dbLogSQL", cfg.LogSQL,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"shutdownTimeout", cfg.ShutdownTimeout,
	)
	dbConn, dataset, err := openDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	metrics.Init()
	metrics.SetDatasetSize(dataset.StationCount(), dataset.Len())

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}
	mux := httpapi.NewMux(dbConn)
	climate.RegisterFeature(mux, dataset)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// openDataset connects to the dataset, applies migrations only when the
// connection is writable, and loads the store. The caller owns the returned
// connection.
func openDataset(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sql.DB, *store.Store, error) {
	dbConn, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("database connection successful")

	if cfg.Driver == config.DriverSQLite && !cfg.ReadOnly {
		applied, err := migrate.Run(ctx, dbConn)
		if err != nil {
			_ = db.Close(dbConn)
			return nil, nil, err
		}
		slog.Info("migrations applied", "count", applied)
	}

	dataset, err := climate.LoadStore(ctx, dbConn)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	if dataset.Len() == 0 {
		slog.Warn("dataset has no measurements; date-window queries will answer 503")
	}
	slog.Info("dataset loaded", "stations", dataset.StationCount(), "measurements", dataset.Len())
	return dbConn, dataset, nil
}
