package query

import (
	"log/slog"

	"github.com/google/uuid"
)

// Request stamps one query-service call with a correlation ID, the same
// role cue-lang-cue uses github.com/google/uuid for (build-instance
// identity) — here it ties a completion/hover/goto call's log lines
// together without threading a request struct through the whole
// document/schema walk.
type Request struct {
	ID     string
	Logger *slog.Logger
}

// NewRequest mints a Request with a fresh UUID. logger may be nil, in
// which case calls log nothing.
func NewRequest(logger *slog.Logger) *Request {
	return &Request{ID: uuid.NewString(), Logger: logger}
}

func (r *Request) log(op string, args ...any) {
	if r == nil || r.Logger == nil {
		return
	}
	r.Logger.Debug(op, append([]any{"request_id", r.ID}, args...)...)
}
