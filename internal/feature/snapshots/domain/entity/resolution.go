package entity

// Status tells whether a snapshot carries live data.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// DegradedReason explains why a placeholder was produced.
type DegradedReason string

const (
	ReasonNone             DegradedReason = ""
	ReasonIndexUnavailable DegradedReason = "index_unavailable"
	ReasonProviderError    DegradedReason = "provider_error"
	ReasonMalformedPayload DegradedReason = "malformed_payload"
)

// Resolution is the outcome of resolving one watchlist entry.
// It always carries a displayable snapshot; Err holds the underlying cause of a degraded result.
type Resolution struct {
	Snapshot StockSnapshot
	Status   Status
	Reason   DegradedReason
	Err      error
}

// Degraded reports whether the snapshot is a placeholder.
func (r Resolution) Degraded() bool {
	return r.Status == StatusDegraded
}

// Resolved wraps a live snapshot.
func Resolved(s StockSnapshot) Resolution {
	return Resolution{Snapshot: s, Status: StatusOK}
}

// DegradedTo wraps a placeholder snapshot with its reason and cause.
func DegradedTo(s StockSnapshot, reason DegradedReason, err error) Resolution {
	return Resolution{Snapshot: s, Status: StatusDegraded, Reason: reason, Err: err}
}
