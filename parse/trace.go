package parse

import (
	"github.com/tliron/commonlog"
	"github.com/vhotmar/mff-vector-drawing-sub001/input"
)

// Trace wraps p so that each invocation is logged at debug level under name:
// the remaining input on entry, the consumed length on success, and the kind
// and severity on failure. It does nothing when debug logging is disabled.
func Trace[I input.Sliceable[I], O any](name string, p Parser[I, O], log commonlog.Logger) Parser[I, O] {
	return func(in I) Result[I, O] {
		if !log.AllowLevel(commonlog.Debug) {
			return p(in)
		}
		log.Debugf("%s: enter with %d remaining", name, in.Len())
		r := p(in)
		if r.Err != nil {
			log.Debugf("%s: %s %s at %d remaining", name, r.Err.Severity, r.Err.Kind, r.Err.Remaining())
			return r
		}
		log.Debugf("%s: consumed %d", name, in.Offset(r.Rest))
		return r
	}
}
