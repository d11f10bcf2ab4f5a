package dynamics

import "time"

// DatedDocument is the projection of a document the yearly histogram needs.
type DatedDocument struct {
	ID       int64
	IssuedAt *time.Time
}

type Yearly struct {
	Years      []int
	Counts     []int
	Cumulative []int
	// Skipped holds ids of documents excluded for lacking an issuance date.
	Skipped []int64
}

// ComputeYearly buckets documents by issuance year over
// [minYear, max(maxYear, now.Year())] with zero-filled gaps.
func ComputeYearly(docs []DatedDocument, now time.Time) Yearly {
	current := now.Year()

	byYear := map[int]int{}
	skipped := make([]int64, 0)
	minYear, maxYear := 0, 0
	for _, d := range docs {
		if d.IssuedAt == nil || d.IssuedAt.IsZero() {
			skipped = append(skipped, d.ID)
			continue
		}
		y := d.IssuedAt.Year()
		if len(byYear) == 0 || y < minYear {
			minYear = y
		}
		if len(byYear) == 0 || y > maxYear {
			maxYear = y
		}
		byYear[y]++
	}

	if len(byYear) == 0 {
		minYear, maxYear = current, current
	}
	if maxYear < current {
		maxYear = current
	}

	n := maxYear - minYear + 1
	out := Yearly{
		Years:      make([]int, 0, n),
		Counts:     make([]int, 0, n),
		Cumulative: make([]int, 0, n),
		Skipped:    skipped,
	}
	running := 0
	for y := minYear; y <= maxYear; y++ {
		c := byYear[y]
		running += c
		out.Years = append(out.Years, y)
		out.Counts = append(out.Counts, c)
		out.Cumulative = append(out.Cumulative, running)
	}
	return out
}

// ComputeK sums positive year-over-year increments of a cumulative series.
// Negative deltas contribute nothing, so pre-aggregated input that dips is
// still safe.
func ComputeK(cumulative []int) int {
	if len(cumulative) < 2 {
		return 0
	}
	k := 0
	for i := 1; i < len(cumulative); i++ {
		if d := cumulative[i] - cumulative[i-1]; d > 0 {
			k += d
		}
	}
	return k
}
