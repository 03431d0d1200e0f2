package logging

import "github.com/rs/zerolog"

// ContextHook stamps events logged with Event.Ctx with the Run carried by
// that context.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	RunFrom(e.GetCtx()).apply(e)
}
