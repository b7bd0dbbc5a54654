package wizard

import "time"

//nolint:gochecknoglobals // fixed message rotation.
var loadingMessageKeys = []string{
	"loading.message_1",
	"loading.message_2",
	"loading.message_3",
	"loading.message_4",
	"loading.message_5",
}

// LoadingMessageKey returns the translation key of the status text shown after elapsed.
// The messages advance every interval and wrap around.
func LoadingMessageKey(elapsed, interval time.Duration) string {
	if elapsed < 0 || interval <= 0 {
		return loadingMessageKeys[0]
	}
	return loadingMessageKeys[int(elapsed/interval)%len(loadingMessageKeys)]
}
