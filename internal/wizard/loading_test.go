package wizard_test

import (
	"testing"
	"time"

	"github.com/myrjola/fitplan/internal/wizard"
)

func TestLoadingMessageKey(t *testing.T) {
	interval := 2 * time.Second
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{elapsed: 0, want: "loading.message_1"},
		{elapsed: 1999 * time.Millisecond, want: "loading.message_1"},
		{elapsed: 2 * time.Second, want: "loading.message_2"},
		{elapsed: 9 * time.Second, want: "loading.message_5"},
		{elapsed: 10 * time.Second, want: "loading.message_1"},
		{elapsed: 13 * time.Second, want: "loading.message_2"},
		{elapsed: -time.Second, want: "loading.message_1"},
	}
	for _, tt := range tests {
		if got := wizard.LoadingMessageKey(tt.elapsed, interval); got != tt.want {
			t.Errorf("LoadingMessageKey(%s) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
	if got := wizard.LoadingMessageKey(time.Minute, 0); got != "loading.message_1" {
		t.Errorf("zero interval = %q", got)
	}
}
