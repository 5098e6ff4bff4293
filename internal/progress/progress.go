// Package progress reports coarse indexing progress as a percentage plus
// an optional message or error. A Reporter can be carried on the context
// (WithReporter, FromContext) so a background indexing task can report
// without threading an explicit parameter through every call site.
package progress

import "context"

// Update is one progress notification: a 0-100 percentage, a human-readable
// message, and an optional terminal error. A nil Reporter silently drops
// updates, so callers never need a nil check before reporting.
type Update struct {
	Percentage int
	Message    string
	Err        error
}

// Reporter receives Update values as a long-running task (archive loading,
// source-tree indexing) advances.
type Reporter interface {
	Report(u Update)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Update)

// Report implements Reporter.
func (f ReporterFunc) Report(u Update) { f(u) }

// noop discards every update; used as the zero value so callers can always
// report without a nil check.
type noop struct{}

func (noop) Report(Update) {}

// None is a Reporter that discards every update.
var None Reporter = noop{}

type contextKey struct{}

// WithReporter attaches a Reporter to ctx: background work started from a
// request can report progress without the caller threading a Reporter
// through every intermediate function.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	if r == nil {
		r = None
	}
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the Reporter attached to ctx, or None if none was
// attached.
func FromContext(ctx context.Context) Reporter {
	if ctx == nil {
		return None
	}
	if r, ok := ctx.Value(contextKey{}).(Reporter); ok && r != nil {
		return r
	}
	return None
}

// Tracker accumulates progress across a known total number of steps
// (e.g. one step per archive, or per source file) and reports a
// percentage.
type Tracker struct {
	reporter Reporter
	total    int
	done     int
	message  string
}

// NewTracker builds a Tracker over total steps, reporting through r (use
// None to discard).
func NewTracker(r Reporter, total int, message string) *Tracker {
	if r == nil {
		r = None
	}
	return &Tracker{reporter: r, total: total, message: message}
}

// Advance marks n more steps complete and reports the updated percentage.
func (t *Tracker) Advance(n int) {
	t.done += n
	pct := 100
	if t.total > 0 {
		pct = t.done * 100 / t.total
		if pct > 100 {
			pct = 100
		}
	}
	t.reporter.Report(Update{Percentage: pct, Message: t.message})
}

// Fail reports a terminal error, ending the tracked task.
func (t *Tracker) Fail(err error) {
	t.reporter.Report(Update{Percentage: t.done * 100 / maxInt(t.total, 1), Message: t.message, Err: err})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
