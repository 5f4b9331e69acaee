// Package diagnostics reports statistics about a completed graph
// construction: wall-clock duration, out-degree distribution, and how many
// times the exponential degree-budget search had to double before an
// attempt succeeded.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Diagnostics summarizes one mng.Build call.
type Diagnostics struct {
	BuildDuration   time.Duration `json:"build_duration"`
	MaxOutDegree    int           `json:"max_out_degree"`
	AvgOutDegree    float64       `json:"avg_out_degree"`
	BudgetDoublings int           `json:"budget_doublings"`
}

// FromAdjacencyLists computes out-degree statistics over adj and packages
// them with start (the time the build began) and doublings (the number of
// exponential-search attempts the build took before succeeding).
func FromAdjacencyLists[T any](adj [][]T, start time.Time, doublings int) Diagnostics {
	maxDeg := 0
	total := 0
	for _, row := range adj {
		if len(row) > maxDeg {
			maxDeg = len(row)
		}
		total += len(row)
	}
	avg := 0.0
	if len(adj) > 0 {
		avg = float64(total) / float64(len(adj))
	}
	return Diagnostics{
		BuildDuration:   time.Since(start),
		MaxOutDegree:    maxDeg,
		AvgOutDegree:    avg,
		BudgetDoublings: doublings,
	}
}

// WriteJSON writes d to w as a single JSON object, for callers (such as
// cmd/mngbuild) that want machine-readable build reports instead of the
// structured log lines emitted during the build itself.
func WriteJSON(w io.Writer, d Diagnostics) error {
	enc := json.NewEncoder(w)
	return enc.Encode(d)
}

// String renders d as a short human-readable summary line.
func (d Diagnostics) String() string {
	return fmt.Sprintf(
		"duration=%s max_out_degree=%d avg_out_degree=%.2f budget_doublings=%d",
		d.BuildDuration, d.MaxOutDegree, d.AvgOutDegree, d.BudgetDoublings,
	)
}
