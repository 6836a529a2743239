package aggregators

import (
	"cmp"
	"math"
	"slices"

	"log-analyzer/internal/models"

	"github.com/samber/lo"
)

type StatsReducer interface {
	// Reduce turns per-URL samples into report rows ordered by total time, descending,
	// keeping at most limit rows (limit <= 0 keeps all). samples is not modified.
	Reduce(samples map[string][]float64, limit int) []models.ReportRow
}

type statsReducer struct{}

func NewStatsReducer() StatsReducer {
	return &statsReducer{}
}

func (r *statsReducer) Reduce(samples map[string][]float64, limit int) []models.ReportRow {
	totalCount := 0
	totalTime := 0.0
	for _, times := range samples {
		totalCount += len(times)
		totalTime += lo.Sum(times)
	}
	if totalCount == 0 || totalTime == 0 {
		return []models.ReportRow{}
	}

	rows := make([]models.ReportRow, 0, len(samples))
	for url, times := range samples {
		if len(times) == 0 {
			continue
		}
		timeSum := lo.Sum(times)
		rows = append(rows, models.ReportRow{
			URL:       url,
			Count:     len(times),
			CountPerc: round3(100 * float64(len(times)) / float64(totalCount)),
			TimeSum:   round3(timeSum),
			TimePerc:  round3(100 * timeSum / totalTime),
			TimeAvg:   round3(timeSum / float64(len(times))),
			TimeMax:   round3(lo.Max(times)),
			TimeMed:   round3(median(times)),
		})
	}

	slices.SortFunc(rows, func(a, b models.ReportRow) int {
		if c := cmp.Compare(b.TimeSum, a.TimeSum); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// median sorts a copy; the caller's slice keeps its order.
func median(times []float64) float64 {
	sorted := slices.Clone(times)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
