package database

import (
	"database/sql"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/models"
)

// Connect opens the process-wide database handle and runs migrations.
// The caller owns the returned handle and must release it with Close.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := withAuthToken(cfg.DatabaseURL, cfg.DatabaseAuthToken)

	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Warn
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n[DB] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	dialector, err := openDialector(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite(dsn) {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for all models.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Admin{},
		&models.CompanyInfo{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func openDialector(dsn string) (gorm.Dialector, error) {
	if isSQLite(dsn) {
		return SQLite(strings.TrimPrefix(dsn, "sqlite://")), nil
	}

	if err := ensureDatabase(dsn); err != nil {
		return nil, err
	}
	return postgres.Open(dsn), nil
}

const sqliteDriverName = "sqlite3_unicode"

var registerSQLite sync.Once

// SQLite returns a dialector whose connections override LOWER with a
// Unicode-aware version. The built-in one folds ASCII only.
func SQLite(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", unicodeLower, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}

func unicodeLower(value any) any {
	switch v := value.(type) {
	case string:
		return strings.ToLower(v)
	case []byte:
		if v == nil {
			return nil
		}
		return strings.ToLower(string(v))
	default:
		return value
	}
}

func isSQLite(dsn string) bool {
	return strings.HasPrefix(dsn, "sqlite://") ||
		strings.HasPrefix(dsn, "file:") ||
		dsn == ":memory:"
}

// withAuthToken injects the auth token as the password of a postgres URL.
func withAuthToken(dsn, token string) string {
	if token == "" || !isPostgresURL(dsn) {
		return dsn
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}

	username := "postgres"
	if parsed.User != nil && parsed.User.Username() != "" {
		username = parsed.User.Username()
	}
	parsed.User = url.UserPassword(username, token)
	return parsed.String()
}

func isPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func ensureDatabase(dsn string) error {
	if !isPostgresURL(dsn) {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	log.Printf("[DB] creating database %s", dbName)
	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
