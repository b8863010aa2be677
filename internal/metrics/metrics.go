package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "studiobot", Name: "updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "studiobot", Name: "handler_errors_total", Help: "Handler errors",
	})
	LedgerSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studiobot", Name: "ledger_saves_total", Help: "Attendance ledger save attempts",
	}, []string{"result"})
	LedgerSaveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "studiobot", Name: "ledger_save_seconds", Help: "Attendance ledger save latency",
		Buckets: prometheus.DefBuckets,
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "studiobot", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, LedgerSaves, LedgerSaveDuration, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveLedgerSave(d time.Duration, err error) {
	LedgerSaveDuration.Observe(d.Seconds())
	if err != nil {
		LedgerSaves.WithLabelValues("error").Inc()
	} else {
		LedgerSaves.WithLabelValues("ok").Inc()
	}
}
