package provider

// Entity is one raw result from the taste-graph entity search or
// recommendation-insights API.
type Entity struct {
	ID          string
	Name        string
	Type        string
	Subtype     string
	Description string
}

// InsightsRequest describes one recommendation-insights call.
type InsightsRequest struct {
	FilterType      string
	SignalEntityIDs []string
	Limit           int
}

// TrackResult is one track returned by the music-catalog search.
type TrackResult struct {
	ID         string
	Name       string
	Artist     string
	PreviewURL string
}

// Result is the outcome of one best-effort pipeline stage: either the stage
// succeeded (Ok) or it failed and a documented fallback value was substituted
// (Degraded, with the reason retained for logging). A Degraded result never
// aborts the pipeline.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// Ok wraps a successful stage value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Degraded wraps a fallback value with the reason the stage was skipped or failed.
func Degraded[T any](fallback T, reason string) Result[T] {
	return Result[T]{Value: fallback, Degraded: true, Reason: reason}
}
