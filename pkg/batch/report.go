package batch

import (
	"time"

	"github.com/google/uuid"
)

// LocationResult records a successfully linked location.
type LocationResult struct {
	Location    string
	CityURI     string
	IsCity      bool
	WikidataURI string
	GeoNamesURI string
	Triples     int
}

// LocationFailure records a location that could not be processed. The rest of
// the batch continues.
type LocationFailure struct {
	Location string
	Err      error
}

// Report accumulates the outcome of one batch run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Linked []LocationResult
	Failed []LocationFailure

	// TotalTriples is the size of the merged graph after the run.
	TotalTriples int
}

// newReport starts a report with a fresh run ID.
func newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Duration returns the wall-clock time of the run.
func (report *Report) Duration() time.Duration {
	return report.FinishedAt.Sub(report.StartedAt)
}

// Verified counts linked locations that verified as cities.
func (report *Report) Verified() int {
	verified := 0
	for _, result := range report.Linked {
		if result.IsCity {
			verified++
		}
	}
	return verified
}
