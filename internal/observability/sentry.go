package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry инициализирует Sentry, если задан DSN. Пустой DSN выключает
// отправку, возвращая no-op flush.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr отправляет ошибку в Sentry, nil игнорируется
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
