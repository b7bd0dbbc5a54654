// Package flightrecorder keeps a rolling runtime trace in memory and writes it to disk when something went slow.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024
	defaultCooldown = 30 * time.Minute
	tracesDirPerm   = 0o700
)

// Recorder captures at most one trace per cooldown period.
type Recorder struct {
	logger      *slog.Logger
	fr          *trace.FlightRecorder
	dir         string
	cooldown    time.Duration
	lastCapture atomic.Int64
}

// Options tune the recorder. Zero values use the defaults.
type Options struct {
	MinAge   time.Duration
	MaxBytes uint64
	Cooldown time.Duration
}

// New creates a recorder writing its traces into dir. The directory is created when missing.
func New(logger *slog.Logger, dir string, opts Options) (*Recorder, error) {
	if dir == "" {
		return nil, errors.New("traces directory is required")
	}
	if err := os.MkdirAll(dir, tracesDirPerm); err != nil {
		return nil, errors.Wrap(err, "create traces directory", slog.String("dir", dir))
	}
	if opts.MinAge == 0 {
		opts.MinAge = defaultMinAge
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.Cooldown == 0 {
		opts.Cooldown = defaultCooldown
	}
	return &Recorder{
		logger:      logger,
		fr:          trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: opts.MinAge, MaxBytes: opts.MaxBytes}),
		dir:         dir,
		cooldown:    opts.Cooldown,
		lastCapture: atomic.Int64{},
	}, nil
}

// Start begins recording. Stop must be called to release the trace buffer.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.fr.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.dir), slog.Duration("cooldown", r.cooldown))
	return nil
}

func (r *Recorder) Stop(ctx context.Context) {
	r.fr.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to <reason>-<timestamp>.trace unless a trace was captured within the cooldown.
func (r *Recorder) Capture(ctx context.Context, reason string) {
	now := time.Now()
	last := r.lastCapture.Load()
	if last != 0 && now.Sub(time.Unix(last, 0)) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture during cooldown",
			slog.String("reason", reason), slog.Time("last_capture", time.Unix(last, 0)))
		return
	}
	if !r.lastCapture.CompareAndSwap(last, now.Unix()) {
		return
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405")))
	if err := r.writeTrace(path); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to capture trace", errors.SlogError(err))
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace", slog.String("reason", reason), slog.String("file", path))
}

func (r *Recorder) writeTrace(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create trace file", slog.String("file", path))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close trace file", slog.String("file", path))
		}
	}()
	if _, err = r.fr.WriteTo(f); err != nil {
		return errors.Wrap(err, "write trace", slog.String("file", path))
	}
	return nil
}
