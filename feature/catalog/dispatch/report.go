package dispatch

import (
	"sort"
	"sync"
	"time"

	"card-catalog/feature/catalog/layout"
	"card-catalog/feature/catalog/source"
)

// Failure is a record that could not be built.
type Failure struct {
	RecordID string `json:"record_id"`
	Name     string `json:"name"`
	Set      string `json:"set"`
	Error    string `json:"error"`
}

// Report summarizes one load. It is safe for concurrent use while the load
// runs.
type Report struct {
	mu sync.Mutex

	Processed   int            `json:"processed"`
	Built       int            `json:"built"`
	Skipped     int            `json:"skipped"`
	SkippedSets []string       `json:"skipped_sets,omitempty"`
	Strategies  map[string]int `json:"strategies"`
	Failures    []Failure      `json:"failures"`
	Duration    time.Duration  `json:"duration"`
}

func newReport() *Report {
	return &Report{Strategies: make(map[string]int)}
}

func (r *Report) processed() {
	r.mu.Lock()
	r.Processed++
	r.mu.Unlock()
}

func (r *Report) skipped() {
	r.mu.Lock()
	r.Skipped++
	r.mu.Unlock()
}

func (r *Report) built(s layout.Strategy) {
	r.mu.Lock()
	r.Built++
	r.Strategies[s.String()]++
	r.mu.Unlock()
}

// fail records a record-level failure.
func (r *Report) fail(rec *source.Record, err error) {
	r.mu.Lock()
	r.Failures = append(r.Failures, Failure{
		RecordID: rec.ID,
		Name:     rec.Name,
		Set:      rec.Set,
		Error:    err.Error(),
	})
	r.mu.Unlock()
}

// sortFailures orders failures by record id so reports are stable across runs.
func (r *Report) sortFailures() {
	r.mu.Lock()
	sort.Slice(r.Failures, func(i, j int) bool {
		return r.Failures[i].RecordID < r.Failures[j].RecordID
	})
	r.mu.Unlock()
}

// meldReporter feeds meld outcomes into the report. Meld records are counted
// here rather than when they are submitted, since a part is only built once
// its result arrives.
type meldReporter struct {
	report *Report
}

func (m meldReporter) Built(*source.Record) {
	m.report.built(layout.Meld)
}

func (m meldReporter) Failed(rec *source.Record, err error) {
	m.report.fail(rec, err)
}
