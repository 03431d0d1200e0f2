package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field names shared by loggers and the context hook.
const (
	FieldComponent = "cmp"
	FieldSession   = "session_id"
	FieldDataFile  = "data_file"
)

// Run identifies one invocation of the slicer for log correlation.
type Run struct {
	SessionID string
	DataFile  string
}

type runKey struct{}

// WithRun stores r in ctx, replacing any run already there.
func WithRun(ctx context.Context, r Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// RunFrom returns the run carried by ctx, or the zero Run.
func RunFrom(ctx context.Context) Run {
	if ctx == nil {
		return Run{}
	}
	r, _ := ctx.Value(runKey{}).(Run)
	return r
}

// WithSessionID sets the session of the run in ctx. A session is one run of
// the interactive slicer.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	r := RunFrom(ctx)
	r.SessionID = sessionID
	return WithRun(ctx, r)
}

// WithDataFile sets the data view file of the run in ctx.
func WithDataFile(ctx context.Context, path string) context.Context {
	r := RunFrom(ctx)
	r.DataFile = path
	return WithRun(ctx, r)
}

func (r Run) apply(e *zerolog.Event) {
	if r.SessionID != "" {
		e.Str(FieldSession, r.SessionID)
	}
	if r.DataFile != "" {
		e.Str(FieldDataFile, r.DataFile)
	}
}
