package model

import (
	"sort"
)

// Accuracy is the share of predictions matching the true labels.
//
// It returns 0 for empty input.
func Accuracy(yTrue []float64, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	hit := 0
	for i, p := range yPred {
		if float64(p) == yTrue[i] {
			hit++
		}
	}
	return float64(hit) / float64(len(yTrue))
}

// AUC is the area under the ROC curve, computed by rank statistics
// (Mann-Whitney U). Tied scores share averaged ranks.
//
// It returns 0 when either class is absent.
func AUC(yTrue []float64, scores []float64) float64 {
	if len(yTrue) != len(scores) || len(yTrue) == 0 {
		return 0
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	ranks := make([]float64, len(scores))
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			j++
		}
		// averaged 1-based rank over the tie group [i, j)
		r := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[order[k]] = r
		}
		i = j
	}

	var positives, rankSum float64
	for i, y := range yTrue {
		if y == 1 {
			positives++
			rankSum += ranks[i]
		}
	}
	negatives := float64(len(yTrue)) - positives
	if positives == 0 || negatives == 0 {
		return 0
	}

	u := rankSum - positives*(positives+1)/2.0
	return u / (positives * negatives)
}
