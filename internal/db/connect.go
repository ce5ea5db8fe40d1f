package db

import (
	"context"
	"fmt"
	"strings"

	"kanban/internal/logger"
	"kanban/internal/repository"
	"kanban/internal/service"
	"kanban/internal/sqlitestorage"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Store bundles whichever backend DATABASE_URL selected.
type Store struct {
	Name  string
	Users service.UserStore
	Tasks service.TaskStore

	ping  func(ctx context.Context) error
	reset func(ctx context.Context) error
	close func()
}

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Reset drops and recreates both tables.
func (s *Store) Reset(ctx context.Context) error { return s.reset(ctx) }

func (s *Store) Close() { s.close() }

// Open connects to PostgreSQL for postgres:// URLs and treats anything else
// as a SQLite file path. The schema is created if missing.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return openPostgres(ctx, dsn)
	}
	return openSQLite(dsn)
}

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "backend", BackendPostgres)
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*Store, error) {
	pool, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		Name:  BackendPostgres,
		Users: repository.NewUserRepository(pool),
		Tasks: repository.NewTaskRepository(pool),
		ping:  pool.Ping,
		reset: func(ctx context.Context) error { return repository.ResetSchema(ctx, pool) },
		close: pool.Close,
	}, nil
}

func openSQLite(path string) (*Store, error) {
	storage, err := sqlitestorage.New(path)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected", "backend", BackendSQLite, "path", path)
	return &Store{
		Name:  BackendSQLite,
		Users: storage,
		Tasks: storage.Tasks(),
		ping:  storage.Ping,
		reset: func(context.Context) error { return storage.Reset() },
		close: func() { _ = storage.Close() },
	}, nil
}
