package sentiment

import (
	"sort"

	"github.com/spacesedan/thaisenti/internal/models"
)

func Summarize(results []models.AnalysisResult) models.Summary {
	var summary models.Summary
	var total float64

	for _, r := range results {
		switch r.Sentiment {
		case models.Positive:
			summary.Positive++
		case models.Negative:
			summary.Negative++
		default:
			summary.Neutral++
		}
		total += r.Score
	}

	summary.Total = len(results)
	if summary.Total > 0 {
		summary.AverageScore = total / float64(summary.Total)
	}
	summary.Dominant = dominant(summary)
	return summary
}

// dominant picks the most frequent label; any tie at the top resolves to neutral.
func dominant(s models.Summary) models.Sentiment {
	if s.Total == 0 {
		return models.Neutral
	}
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return models.Positive
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return models.Negative
	default:
		return models.Neutral
	}
}

// Timeline orders results oldest first for plotting.
func Timeline(results []models.AnalysisResult) []models.TimelinePoint {
	points := make([]models.TimelinePoint, 0, len(results))
	for _, r := range results {
		points = append(points, models.TimelinePoint{
			At:        r.CreatedAt,
			Score:     r.Score,
			Sentiment: r.Sentiment,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].At.Before(points[j].At)
	})
	return points
}
