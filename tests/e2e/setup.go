//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"vehicle-rental/cmd/bootstrap"
	"vehicle-rental/cmd/bootstrap/components"
	"vehicle-rental/internal/infra/db"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgImage    = "postgres:17"
	pgUser     = "test"
	pgPassword = "testpass"

	// templateDB carries the migrated schema; suites clone it.
	templateDB    = "rental_template"
	migrationFile = "migrations/001_initial_schema.sql"
)

// pgServer is the PostgreSQL container shared by every suite in the
// test binary.
type pgServer struct {
	host string
	port nat.Port
}

func (s pgServer) config(dbName string) config.DBConfig {
	return config.DBConfig{
		Host:     s.host,
		Port:     s.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

var sharedServer = sync.OnceValues(func() (pgServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// durability is irrelevant for throwaway data
			Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "max_connections=200"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return pgServer{host: host, port: port}.config("postgres").BuildDSN()
			}).WithStartupTimeout(time.Minute),
			Labels: map[string]string{"purpose": "vehicle-rental-e2e"},
		},
		Started: true,
	})
	if err != nil {
		return pgServer{}, fmt.Errorf("start postgres: %w", err)
	}

	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return pgServer{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return pgServer{}, err
	}
	srv := pgServer{host: host, port: port}
	if err := srv.prepareTemplate(ctx); err != nil {
		return pgServer{}, err
	}
	return srv, nil
})

// prepareTemplate migrates and seeds templateDB once. A template must have
// no open connections while it is cloned, so the pool is closed here.
func (s pgServer) prepareTemplate(ctx context.Context) error {
	if err := s.admin(ctx, "CREATE DATABASE "+templateDB); err != nil {
		return err
	}
	pool, err := db.Connect(ctx, s.config(templateDB))
	if err != nil {
		return err
	}
	defer pool.Close()

	schema, err := readMigration()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply %s: %w", migrationFile, err)
	}
	return dbtest.SeedReferenceData(pool)
}

func (s pgServer) admin(ctx context.Context, stmt string) error {
	pool, err := pgxpool.New(ctx, s.config("postgres").BuildDSN())
	if err != nil {
		return err
	}
	defer pool.Close()
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("%s: %w", stmt, err)
	}
	return nil
}

// readMigration walks up from the package directory go test runs in.
func readMigration() (string, error) {
	for _, dir := range []string{".", "..", "../..", "../../.."} {
		if b, err := os.ReadFile(filepath.Join(dir, migrationFile)); err == nil {
			return string(b), nil
		}
	}
	return "", fmt.Errorf("%s not found", migrationFile)
}

// cloneDatabase gives the calling suite a private copy of the template.
func cloneDatabase(t *testing.T, srv pgServer) (*pgxpool.Pool, config.DBConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "rental_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, srv.admin(ctx, "CREATE DATABASE "+name+" TEMPLATE "+templateDB), "clone template")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.admin(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop test database", "database", name, "error", err)
		}
	})

	cfg := srv.config(name)
	pool, err := db.Connect(ctx, cfg)
	require.NoError(t, err, "connect to %s", name)
	t.Cleanup(pool.Close)
	return pool, cfg
}

// startApp wires the real application against pool. Redis, MinIO and Kafka
// stay unconfigured, so their no-op implementations are used.
func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) (*gin.Engine, config.Config) {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.App.PreventOverlap = true

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.IntegrationsModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start application")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop e2e app", "error", err)
		}
	})
	return router, cfg
}

// SharedSuite is embedded by every e2e suite. Each subtest starts from a
// truncated, reseeded database.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	srv, err := sharedServer()
	require.NoError(s.T(), err, "postgres container")

	pool, dbCfg := cloneDatabase(s.T(), srv)
	s.DB = pool
	s.Router, s.Config = startApp(s.T(), pool, dbCfg)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
