// Package notify fans out operation outcomes (the service-side
// equivalent of the UI toasts) to the log and the metric registry,
// off the request path.
package notify

import (
	"time"

	"github.com/securebank/backoffice/pkg/logger"
	"github.com/securebank/backoffice/pkg/prom"
	"github.com/securebank/backoffice/pkg/worker"
)

type EventKind string

const (
	EventRecordCreated  EventKind = "record_created"
	EventLoanDecided    EventKind = "loan_decided"
	EventLoginSucceeded EventKind = "login_succeeded"
	EventLoginFailed    EventKind = "login_failed"
)

type Event struct {
	Kind    EventKind
	Entity  string // customer, transaction, loan, user, activity
	Label   string // decision or failure reason, free-form
	Actor   string
	Message string
	At      time.Time
}

type Notifier struct {
	workers *worker.WorkerManager
}

// NewNotifier starts the worker pool immediately; Publish never blocks
// the caller unless the buffer is full.
func NewNotifier(bufferSize, workers int) *Notifier {
	wm := worker.NewWorkerManager(bufferSize, workers, nil)
	n := &Notifier{workers: wm}
	wm.SetWorker(func(_ int, job interface{}) {
		e, ok := job.(Event)
		if !ok {
			return
		}
		n.dispatch(e)
	})
	go func() {
		if err := wm.Start(); err != nil {
			logger.Info("notifier stopped", "reason", err.Error())
		}
	}()
	return n
}

func (n *Notifier) Publish(e Event) {
	if n == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	n.workers.Enqueue(e)
}

func (n *Notifier) Close() {
	n.workers.Exit()
}

func (n *Notifier) dispatch(e Event) {
	switch e.Kind {
	case EventRecordCreated:
		prom.IncCounterVec(prom.SystemRecords, prom.MetricRecordsCreated, e.Entity)
		logger.Info("notification",
			"kind", string(e.Kind), "entity", e.Entity, "actor", e.Actor, "message", e.Message)
	case EventLoanDecided:
		prom.IncCounterVec(prom.SystemRecords, prom.MetricLoanDecisions, e.Label)
		logger.Info("notification",
			"kind", string(e.Kind), "decision", e.Label, "actor", e.Actor, "message", e.Message)
	case EventLoginSucceeded:
		prom.IncCounterVec(prom.SystemAuth, prom.MetricLogins, "success")
		logger.Info("notification", "kind", string(e.Kind), "actor", e.Actor)
	case EventLoginFailed:
		prom.IncCounterVec(prom.SystemAuth, prom.MetricLogins, "failure")
		logger.Warn("notification", "kind", string(e.Kind), "actor", e.Actor, "reason", e.Label)
	default:
		logger.Info("notification", "kind", string(e.Kind), "message", e.Message)
	}
}
