package repo

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	"github.com/pressly/goose/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverPgx      Driver = "pgx"
)

const defaultSQLiteDSN = "file:quizbank.db?_pragma=busy_timeout(5000)"

// dialect returns the goose dialect, the migrations directory and the
// db.system attribute used for tracing.
func (d Driver) dialect() (string, string, string, error) {
	switch d {
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", "sqlite", nil
	case DriverPostgres, DriverPgx:
		return "postgres", "migrations/postgres", "postgresql", nil
	}
	return "", "", "", fmt.Errorf("unsupported driver: %q", d)
}

type Conn struct {
	conn   *sql.DB
	driver Driver
	logger *zap.Logger
	fresh  bool
}

func (conn *Conn) DB() *sql.DB {
	return conn.conn
}

func (conn *Conn) Driver() Driver {
	return conn.driver
}

// Fresh reports whether this connection applied the first migration, i.e.
// the schema did not exist before it was opened.
func (conn *Conn) Fresh() bool {
	return conn.fresh
}

// NewDatabase opens a traced connection pool for driver, retrying a few times
// while the server comes up, and applies the embedded migrations unless
// migrate is given as false.
func NewDatabase(driver Driver, dsn string, logger *zap.Logger, migrate ...bool) (*Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dialect, dir, system, err := driver.dialect()
	if err != nil {
		return nil, err
	}
	if dsn == "" && driver == DriverSQLite {
		dsn = defaultSQLiteDSN
	}
	db, err := retryConn(3, 2*time.Second, logger, func() (*sql.DB, error) {
		logger.Debug("connecting...", zap.String("driver", string(driver)))
		conn, err := otelsql.Open(string(driver), dsn,
			otelsql.WithAttributes(attribute.String("db.system", system)))
		if err != nil {
			return nil, err
		}
		tunePool(driver, conn)
		if err := conn.Ping(); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", zap.String("driver", string(driver)))
	st := &Conn{
		conn:   db,
		driver: driver,
		logger: logger,
	}
	if len(migrate) == 0 || migrate[0] {
		fresh, err := migrateDB(db, dialect, dir, logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		st.fresh = fresh
	}
	return st, nil
}

func (conn *Conn) Close() error {
	return conn.conn.Close()
}

// tunePool keeps SQLite on a single long-lived connection: it has one writer
// and an in-memory database lives only as long as its last connection.
func tunePool(driver Driver, db *sql.DB) {
	switch driver {
	case DriverSQLite:
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
}

func migrateDB(conn *sql.DB, dialect, dir string, logger *zap.Logger) (bool, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger.Sugar()})

	if err := goose.SetDialect(dialect); err != nil {
		return false, err
	}
	before, err := goose.GetDBVersion(conn)
	if err != nil {
		return false, err
	}
	if err := goose.Up(conn, dir); err != nil {
		return false, err
	}
	return before == 0, nil
}

type gooseLogger struct {
	*zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.Debugf(format, v...)
}

func retryConn(attempts int, sleep time.Duration, logger *zap.Logger, callback func() (*sql.DB, error)) (*sql.DB, error) {
	var err error
	for i := 0; i < attempts; i++ {
		var conn *sql.DB
		conn, err = callback()
		if err == nil {
			return conn, nil
		}
		logger.Warn("error connecting, retrying", zap.Int("attempt", i+1), zap.Error(err))
		if i < attempts-1 {
			time.Sleep(sleep)
		}
	}
	return nil, fmt.Errorf("after %d attempts, connection failed: %w", attempts, err)
}
