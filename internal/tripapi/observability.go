package tripapi

import (
	"fmt"
	"io"
	"time"
)

// APICallEvent records metadata about a single Trip Service call.
type APICallEvent struct {
	Op        string
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about Trip Service calls for logging. The
// fire-and-forget checklist toggle reports its failures here and nowhere
// else.
type Observer interface {
	OnCallComplete(event APICallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event APICallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] api_call op=%s %s %s http_status=%d latency_ms=%d status=%s\n",
		ts, event.Op, event.Method, event.Path, event.Status, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(APICallEvent) {}

func errorCode(err error, status int) string {
	switch {
	case err == nil:
		return ""
	case err == ErrTimeout:
		return "TIMEOUT"
	case err == ErrUnavailable:
		return "UNAVAILABLE"
	case status == 404:
		return "NOT_FOUND"
	case status == 422:
		return "VALIDATION"
	case status > 0:
		return fmt.Sprintf("HTTP_%d", status)
	default:
		return "UNKNOWN"
	}
}
