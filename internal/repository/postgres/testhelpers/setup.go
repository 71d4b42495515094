// Package testhelpers - подключение к тестовой БД для интеграционных тестов.
// Тесты скипаются, если PostgreSQL недоступен (TEST_DB_DSN не задан).
package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TestDB - обертка над тестовым подключением
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе или скипает тест.
// DSN берется из TEST_DB_DSN, например:
// host=localhost port=5432 user=postgres password=postgres dbname=journeys_test sslmode=disable
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping database integration tests")
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Skipf("PostgreSQL ping failed: %v", err)
	}

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

// ApplySchema применяет схему journeys к тестовой базе
func (tdb *TestDB) ApplySchema(t *testing.T, schemaSQL string) {
	t.Helper()
	if _, err := tdb.DB.Exec(schemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}

// Cleanup очищает таблицу journeys
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx, `TRUNCATE journeys`)
	return err
}

// Close закрывает подключение
func (tdb *TestDB) Close() {
	_ = tdb.DB.Close()
}
