// Package cluster partitions run durations into duration classes without a
// fixed timing unit.
package cluster

import (
	"errors"
	"math"
	"sort"
)

// DefaultMaxIterations bounds the Lloyd iterations when no limit is configured.
const DefaultMaxIterations = 100

var (
	// ErrInvalidClassCount indicates the requested class count must be positive
	ErrInvalidClassCount = errors.New("class count must be positive")
	// ErrInvalidDuration indicates every duration must be at least one frame
	ErrInvalidDuration = errors.New("durations must be positive")
)

// Config holds clustering options.
type Config struct {
	// MaxIterations caps Lloyd iterations (from config: max_iterations)
	MaxIterations int
}

// Result is the outcome of one clustering pass.
type Result struct {
	// Labels holds the cluster index of each input duration, in input order
	Labels []int
	// Centers holds the mean duration of each cluster. Indices are arbitrary:
	// use Rank to recover ordering.
	Centers []float64
	// Iterations is the number of assignment passes performed
	Iterations int
}

// Fit runs a one-dimensional K-Means over durations.
//
// Initial centers sit on evenly spaced quantiles of the sorted distinct values,
// and assignment ties go to the lower-indexed center, so a given input always
// yields the same result. When there are fewer distinct durations than k, only
// that many clusters are produced.
func Fit(durations []int, k int, cfg Config) (Result, error) {
	if k <= 0 {
		return Result{}, ErrInvalidClassCount
	}
	if len(durations) == 0 {
		return Result{Labels: []int{}, Centers: []float64{}}, nil
	}
	for _, d := range durations {
		if d < 1 {
			return Result{}, ErrInvalidDuration
		}
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	centers := initialCenters(distinct(durations), k)
	labels := make([]int, len(durations))
	for i := range labels {
		labels[i] = -1
	}

	iter := 0
	for iter < maxIter {
		iter++
		changed := false
		for i, d := range durations {
			nearest := nearestCenter(float64(d), centers)
			if nearest != labels[i] {
				labels[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([]float64, len(centers))
		counts := make([]int, len(centers))
		for i, d := range durations {
			sums[labels[i]] += float64(d)
			counts[labels[i]]++
		}
		for c := range centers {
			// an emptied cluster keeps its previous center
			if counts[c] > 0 {
				centers[c] = sums[c] / float64(counts[c])
			}
		}
	}

	return Result{Labels: labels, Centers: centers, Iterations: iter}, nil
}

// distinct returns the sorted unique values.
func distinct(values []int) []int {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	out := sorted[:0]
	for _, v := range sorted {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func initialCenters(values []int, k int) []float64 {
	n := len(values)
	if k > n {
		k = n
	}
	if k == 1 {
		sum := 0.0
		for _, v := range values {
			sum += float64(v)
		}
		return []float64{sum / float64(n)}
	}

	centers := make([]float64, k)
	for i := range centers {
		centers[i] = float64(values[i*(n-1)/(k-1)])
	}
	return centers
}

func nearestCenter(v float64, centers []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range centers {
		if dist := math.Abs(v - center); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}

// Rank returns cluster indices ordered by ascending center. Equal centers keep
// index order.
func Rank(centers []float64) []int {
	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centers[order[a]] < centers[order[b]]
	})
	return order
}

// Ranks maps each cluster index to its rank (0 = shortest center).
func Ranks(centers []float64) []int {
	ranks := make([]int, len(centers))
	for rank, idx := range Rank(centers) {
		ranks[idx] = rank
	}
	return ranks
}

// Sorted returns the centers in ascending order.
func Sorted(centers []float64) []float64 {
	out := make([]float64, 0, len(centers))
	for _, idx := range Rank(centers) {
		out = append(out, centers[idx])
	}
	return out
}
