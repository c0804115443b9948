package agent

import (
	"math"

	"golang.org/x/exp/rand"
)

// adjustTemperature sharpens (temperature < 1) or flattens (> 1) weights
// into a probability distribution.
func adjustTemperature(weights []float64, temperature float64) []float64 {
	// Compute temperature-adjusted probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(weights))
	for i, w := range weights {
		prob := math.Pow(w, exponent)
		sum += prob
		policy[i] = prob
	}
	if sum == 0 {
		for i := range policy {
			policy[i] = 1.0 / float64(len(policy))
		}
		return policy
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

// sample draws an index from a probability distribution.
func sample(rng *rand.Rand, policy []float64) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}

func findMax(values []float64) int {
	maxIndex := 0
	for i, v := range values {
		if v > values[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}
