package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

const (
	GAUGE_SIZE  = 320
	PIE_SIZE    = 360
	LINE_WIDTH  = 720
	LINE_HEIGHT = 320

	MIN_X_SPAN = time.Second
)

var remainderColor = drawing.Color{R: 230, G: 230, B: 230, A: 255}

func colorOf(s models.Sentiment) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(sentiment.Color(s), "#"))
}

// Gauge draws the confidence score as a donut filled up to score.
func Gauge(score float64, label models.Sentiment) ([]byte, error) {
	score = sentiment.ClampScore(score)

	var values []chart.Value
	if score > 0 {
		values = append(values, chart.Value{
			Value: score,
			Label: fmt.Sprintf("%.0f%%", score*100),
			Style: chart.Style{FillColor: colorOf(label), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if rest := 1 - score; rest > 0 {
		values = append(values, chart.Value{
			Value: rest,
			Style: chart.Style{FillColor: remainderColor, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}

	donut := chart.DonutChart{
		Title:  sentiment.Present(label, score).Title,
		Width:  GAUGE_SIZE,
		Height: GAUGE_SIZE,
		Values: values,
	}
	return render(donut.Render)
}

// Pie draws the label distribution of summary.
func Pie(summary models.Summary) ([]byte, error) {
	if summary.Total == 0 {
		return nil, ErrNoData
	}

	var values []chart.Value
	for _, label := range models.Sentiments {
		count := summary.Count(label)
		if count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(count),
			Label: fmt.Sprintf("%s %.0f%%", label, summary.Share(label)),
			Style: chart.Style{FillColor: colorOf(label), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Width:  PIE_SIZE,
		Height: PIE_SIZE,
		Values: values,
	}
	return render(pie.Render)
}

// Line plots confidence over time, one dot per result colored by its label.
func Line(points []models.TimelinePoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	times := make([]time.Time, 0, len(points))
	scores := make([]float64, 0, len(points))
	for _, p := range points {
		times = append(times, p.At)
		scores = append(scores, sentiment.ClampScore(p.Score))
	}
	// go-chart needs two distinct x values; it plots times as float64 nanoseconds,
	// so results of one batch can collapse onto a single x
	first, last := times[0], times[0]
	for _, at := range times[1:] {
		if at.Before(first) {
			first = at
		}
		if at.After(last) {
			last = at
		}
	}
	if last.Sub(first) < MIN_X_SPAN {
		times = append(times, last.Add(time.Minute))
		scores = append(scores, scores[len(scores)-1])
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "confidence",
			XValues: times,
			YValues: scores,
			Style: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 2,
			},
		},
	}
	for _, label := range models.Sentiments {
		var xs []time.Time
		var ys []float64
		for _, p := range points {
			if p.Sentiment != label {
				continue
			}
			xs = append(xs, p.At)
			ys = append(ys, sentiment.ClampScore(p.Score))
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.TimeSeries{
			Name:    string(label),
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(colorOf(label)),
		})
	}

	graph := chart.Chart{
		Width:      LINE_WIDTH,
		Height:     LINE_HEIGHT,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{
			Name:  "Confidence",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(graph.Render)
}

// pointStyle renders dots only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
