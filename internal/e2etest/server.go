package e2etest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/fitplan/internal/logging"
)

// Server is a fitplan server running in the test process.
type Server struct {
	url        string
	client     *Client
	db         *sql.DB
	cancel     context.CancelCauseFunc
	serverDone chan struct{}
}

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

// LogDsnKey is the data source name key used to log the SQL DSN.
const LogDsnKey = "sqlDsn"

// RunFunc has the signature of the server entrypoint.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// StartServer starts run in a goroutine and waits until it answers the health check.
// The server is shut down when the test finishes.
//
// logSink receives the server logs. You usually want to use testhelpers.NewWriter.
// run must log the listening address under LogAddrKey and the database DSN under LogDsnKey.
func StartServer(t *testing.T, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (*Server, error) {
	var server *Server
	t.Cleanup(func() {
		if server != nil {
			server.Shutdown()
		}
	})
	ctx, cancel := context.WithCancelCause(t.Context())
	serverDone := make(chan struct{})

	addrCh := make(chan string, 1)
	dsnCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case LogAddrKey:
				addrCh <- a.Value.String()
			case LogDsnKey:
				dsnCh <- a.Value.String()
			}
			return a
		},
	})))

	go func() {
		defer close(serverDone)
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()
	var addr, dsn string
	for addr == "" || dsn == "" {
		select {
		case <-ctx.Done():
			<-serverDone
			return nil, fmt.Errorf("server stopped before it was ready: %w", context.Cause(ctx))
		case addr = <-addrCh:
		case dsn = <-dsnCh:
		}
	}

	server = &Server{
		url:        "http://" + addr,
		client:     nil,
		db:         nil,
		cancel:     cancel,
		serverDone: serverDone,
	}
	var err error
	if server.client, err = NewClient(server.url); err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err = server.client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	// The sqlite3 driver is registered by the server.
	if server.db, err = sql.Open("sqlite3", dsn); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return server, nil
}

// Client returns the client created with the server. It acts as one browser profile.
func (s *Server) Client() *Client {
	return s.client
}

// NewProfile returns a client with an empty cookie jar, acting as another browser profile.
func (s *Server) NewProfile() (*Client, error) {
	return NewClient(s.url)
}

func (s *Server) URL() string {
	return s.url
}

// OverwriteStorage replaces the local storage value under key for every profile that has it.
// Tests use it to simulate corrupted or tampered browser storage.
func (s *Server) OverwriteStorage(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE local_storage SET value = ? WHERE key = ?`, value, key); err != nil {
		return fmt.Errorf("overwrite %s: %w", key, err)
	}
	return nil
}

// Shutdown stops the server and waits for it to finish.
func (s *Server) Shutdown() {
	s.cancel(nil)
	<-s.serverDone
	if s.db != nil {
		_ = s.db.Close()
	}
}
