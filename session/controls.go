package session

// Stage is the position of a session in its load sequence.
type Stage int

const (
	Init Stage = iota
	MetadataFetch
	EligibilityCheck
	SeriesBranch
	MovieBranch

	// Degraded means metadata could not be loaded, every control is inert.
	Degraded

	// Aborted means the input did not name any content.
	Aborted
)

func (s Stage) String() string {
	switch s {
	case Init:
		return "init"
	case MetadataFetch:
		return "metadata"
	case EligibilityCheck:
		return "eligibility"
	case SeriesBranch:
		return "series"
	case MovieBranch:
		return "movie"
	case Degraded:
		return "degraded"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Ready reports whether the session reached a content branch.
func (s Stage) Ready() bool {
	return s == SeriesBranch || s == MovieBranch
}

// Controls says which card controls are shown.
type Controls struct {
	Watch       bool
	SeriesPanel bool
	Buy         bool
	Trailer     bool
	Rating      bool
	Favorite    bool
}

// Alerter shows a short message to the user.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) {
	f(message)
}

// Alert messages.
const (
	MsgSourceUnavailable  = "Source unavailable"
	MsgTrailerUnavailable = "Trailer unavailable"
	MsgPurchaseRequired   = "Content available only after purchase or subscription"
	MsgPlayerFailed       = "Failed to start player"
	MsgPurchaseFailed     = "Purchase failed"
)
