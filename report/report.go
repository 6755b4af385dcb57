// Package report turns raw score tensors into per-sample predictions and
// summarizes preprocessing latency.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prediction is the winning class for one sample.
type Prediction struct {
	Label int
	Score float32
}

// ArgMax picks the top class per sample. data must describe a 2-D tensor
// of shape [samples, classes].
func ArgMax(data []float32, shape []int64) ([]Prediction, error) {
	if len(shape) != 2 {
		return nil, fmt.Errorf("want a 2-D score tensor, got shape %v", shape)
	}
	samples, classes := int(shape[0]), int(shape[1])
	if classes == 0 || samples*classes != len(data) {
		return nil, fmt.Errorf("score tensor shape %v does not match %d values", shape, len(data))
	}

	preds := make([]Prediction, samples)
	for s := 0; s < samples; s++ {
		row := data[s*classes : (s+1)*classes]
		best := 0
		for i, v := range row {
			if v > row[best] {
				best = i
			}
		}
		preds[s] = Prediction{Label: best, Score: row[best]}
	}
	return preds, nil
}

// PrintPredictions writes one line per sample in the batch.
func PrintPredictions(preds []Prediction) {
	for i, p := range preds {
		fmt.Printf("Sample %d - label: %d ~ %f\n", i, p.Label, p.Score)
	}
}

// LatencySummary formats the mean and the full list of per-batch
// preprocessing latencies in milliseconds.
func LatencySummary(latencies []time.Duration) string {
	if len(latencies) == 0 {
		return "Latencies [ms]: none recorded"
	}
	ms := make([]string, len(latencies))
	var sum float64
	for i, d := range latencies {
		v := float64(d) / float64(time.Millisecond)
		sum += v
		ms[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return fmt.Sprintf("Latencies [ms]: %.3f [%s]", sum/float64(len(latencies)), strings.Join(ms, " "))
}
