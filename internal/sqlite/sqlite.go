package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"
	"github.com/myrjola/fitplan/internal/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase connects to a database and applies the pending migrations.
//
// It establishes two database connections, one for read/write operations and one for read-only operations.
// This is a best practice mentioned in https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
//
// The url parameter is the path to the SQLite database file or ":memory:" for an in-memory database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	var (
		err error
		db  *Database
	)

	if db, err = connect(ctx, url, logger); err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	if err = db.migrate(ctx); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}

	return db, nil
}

// migrate applies the embedded versioned migrations.
func (db *Database) migrate(ctx context.Context) error {
	start := time.Now()
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "open migration source")
	}
	driver, err := migratesqlite.WithInstance(db.ReadWrite, &migratesqlite.Config{}) //nolint:exhaustruct // defaults.
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}
	// The migrator is not closed because closing the driver closes the read-write connection.
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "run migrations")
	}
	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "read migration version")
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database",
		slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty),
		slog.Duration("duration", time.Since(start)))
	return nil
}

//nolint:gochecknoglobals // once is used to ensure that the SQLite driver is registered only once.
var once sync.Once

const (
	optimizedDriver = "sqlite3optimized"
	maxReadConns    = 10
)

// registerOptimizedDriver that executes performance-enhancing pragmas on connection.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver,
		&sqlite3.SQLiteDriver{
			Extensions: nil,
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if _, err := conn.Exec(
					// Keep temporary tables and indices in memory.
					"PRAGMA temp_store = memory;"+
						// Fewer syscalls with memory-mapped I/O.
						"PRAGMA mmap_size = 30000000000;", nil); err != nil {
					return fmt.Errorf("exec optimization pragmas: %w", err)
				}
				return nil
			},
		})
}

// dataSourceNames returns the read-write and read-only DSNs for the database at url.
//
// ":memory:" becomes a uniquely named shared-cache in-memory database so that both pools see the same data
// while parallel tests stay isolated. See https://www.sqlite.org/inmemorydb.html.
func dataSourceNames(url string) (string, string) {
	params := []string{
		"_loc=auto",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}
	if strings.Contains(url, ":memory:") {
		url = rand.Text()
		params = append(params, "mode=memory", "cache=shared")
	}
	// Underscore options are go-sqlite3 driver options, the rest are SQLite URI parameters.
	common := strings.Join(params, "&")
	readWrite := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s", url, common)
	readOnly := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s", url, common)
	return readWrite, readOnly
}

func openPool(dsn string, maxConns int) (*sql.DB, error) {
	pool, err := sql.Open(optimizedDriver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	pool.SetMaxOpenConns(maxConns)
	pool.SetMaxIdleConns(maxConns)
	pool.SetConnMaxLifetime(time.Hour)
	pool.SetConnMaxIdleTime(time.Hour)
	return pool, nil
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	readWriteDSN, readOnlyDSN := dataSourceNames(url)
	once.Do(registerOptimizedDriver)

	// SQLite allows a single writer.
	readWrite, err := openPool(readWriteDSN, 1)
	if err != nil {
		return nil, errors.Wrap(err, "read-write pool")
	}
	// sql.Open is lazy so ping to create the database file and apply the connection pragmas.
	if err = readWrite.PingContext(ctx); err != nil {
		return nil, errors.Join(errors.Wrap(err, "ping read-write pool"), readWrite.Close())
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "opened database", slog.String("sqlDsn", readWriteDSN))

	readOnly, err := openPool(readOnlyDSN, maxReadConns)
	if err != nil {
		return nil, errors.Join(errors.Wrap(err, "read-only pool"), readWrite.Close())
	}

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// Close closes the database connections.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
