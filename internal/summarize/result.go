package summarize

// State distinguishes the three non-error outcomes of a summarization call.
// Empty means there was nothing to summarize or the backend soft-failed;
// Unavailable means no generation capability is configured at all.
type State int

const (
	StateEmpty State = iota
	StateSummary
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateSummary:
		return "summary"
	case StateUnavailable:
		return "unavailable"
	default:
		return "empty"
	}
}

type Result struct {
	State State
	Text  string
}

func summaryResult(text string) Result {
	return Result{State: StateSummary, Text: text}
}

func emptyResult() Result {
	return Result{State: StateEmpty}
}

func unavailableResult() Result {
	return Result{State: StateUnavailable}
}

// Available reports whether a generation capability produced (or could have
// produced) this result.
func (r Result) Available() bool {
	return r.State != StateUnavailable
}
