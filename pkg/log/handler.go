package log

import (
	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// withError attaches err and, when it carries a cockroachdb/errors stack, the
// formatted stack trace. Structured error types also embed their own fields.
func withError(ev *zerolog.Event, err error) *zerolog.Event {
	ev = ev.Err(err)
	if stack := errors.GetStack(err); stack != "" {
		ev = ev.Str(StacktraceKey, stack)
	}
	var obj zerolog.LogObjectMarshaler
	if errors.As(err, &obj) {
		ev = ev.Dict("error.detail", zerolog.Dict().EmbedObject(obj))
	}
	return ev
}
