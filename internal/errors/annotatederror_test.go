package errors_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/testhelpers"
)

var errNoGoals = errors.NewSentinel("no goals selected")

// here returns file:line of its caller with the given line offset.
func here(offset int) string {
	_, file, line, _ := runtime.Caller(1)
	return file[strings.LastIndex(file, "/")+1:] + ":" + strconv.Itoa(line+offset)
}

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  errNoGoals,
			want: "no goals selected",
		},
		{
			name: "new with attributes",
			err:  errors.New("plan has no days", slog.String("plan", "Iron Forge")),
			want: "plan has no days",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(errNoGoals, "submit form", slog.String("profile", "p1")),
			want: "submit form: no goals selected",
		},
		{
			name: "wrapped twice",
			err:  errors.Wrap(errors.Wrap(errNoGoals, "submit form"), "update wizard"),
			want: "update wizard: submit form: no goals selected",
		},
		{
			name: "wrapped nil",
			err:  errors.Wrap(nil, "read history"),
			want: "read history",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndAs(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("generate: %w", errNoGoals), "submit")
	if !errors.Is(wrapped, errNoGoals) {
		t.Error("Is() = false, want true through plain and annotated wrappers")
	}
	if errors.Is(wrapped, errors.NewSentinel("no goals selected")) {
		t.Error("Is() = true for a different sentinel with the same message")
	}

	custom := &storageError{key: "workoutHistory"}
	var target *storageError
	if !errors.As(errors.Wrap(custom, "append entry"), &target) || target != custom {
		t.Errorf("As() target = %v, want %v", target, custom)
	}
	if errors.Unwrap(errNoGoals) != nil {
		t.Error("Unwrap() of a sentinel should be nil")
	}
}

func TestSlogError(t *testing.T) {
	err, source := errors.Wrap(errNoGoals, "submit form", slog.String("level", "beginner"), slog.Int("days", 4)), here(0)
	err = errors.Wrap(err, "update wizard", slog.String("step", "form"))

	var buf bytes.Buffer
	testhelpers.NewLogger(&buf).Info("failed", errors.SlogError(err))
	logLine := buf.String()

	for _, want := range []string{
		`error.message="update wizard: submit form: no goals selected"`,
		"error.annotations.level=beginner",
		"error.annotations.days=4",
		"error.annotations.step=form",
		source,
	} {
		if !strings.Contains(logLine, want) {
			t.Errorf("expected log line %s to contain %s", logLine, want)
		}
	}
	if strings.Contains(logLine, "annotatederror.go") {
		t.Error("expected the source to skip the errors package")
	}

	// None of these may panic.
	errors.SlogError(nil)
	errors.SlogError(errors.Join(nil, errNoGoals, errors.New("second")))
	errors.SlogError(fmt.Errorf("plain: %w", errNoGoals))
	errors.SlogError(errors.Wrap(errors.Join(nil, nil), "empty join"))
}

type storageError struct {
	key string
}

func (e *storageError) Error() string {
	return "storage failure for " + e.key
}

func TestDecoratePanic(t *testing.T) {
	var source string
	defer func() {
		err := errors.DecoratePanic(recover())
		if err == nil {
			t.Fatal("expected error")
		}
		if got, want := err.Error(), "panic: day index out of range"; got != want {
			t.Errorf("err.Error(): got %q, want %q", got, want)
		}
		if got := errors.SlogError(err).String(); !strings.Contains(got, source) {
			t.Errorf("expected %q to contain %q", got, source)
		}
	}()
	source = here(1)
	panic("day index out of range")
}

func TestDecoratePanic_nil(t *testing.T) {
	if err := errors.DecoratePanic(nil); err != nil {
		t.Errorf("DecoratePanic(nil) = %v, want nil", err)
	}
}
