package db

import (
	"fmt"
	"net/url"
	"time"

	"aerocost/api/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// InitSQLX returns the sqlx handle used by the read-model queries. Postgres
// gets its own lib/pq pool; SQLite shares the GORM connection so both layers
// see the same file (or in-memory database).
func InitSQLX(cfg config.DatabaseConfig, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.IsSQLite() {
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		return sqlx.NewDb(sqlDB, "sqlite3"), nil
	}

	dsn := (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Name,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}).String()

	var (
		conn *sqlx.DB
		err  error
	)
	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect sqlx to postgres: %w", err)
}
