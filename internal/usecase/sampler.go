package usecase

import (
	"math/rand"

	"fraud-analysis/internal/domain"
)

// BalancedSample draws perClass records from each class using a uniform
// random draw without replacement, seeded for reproducibility: the same seed
// over the same table always selects the same rows in the same order.
//
// A class with fewer rows than requested yields an InsufficientRowsError and
// no partial sample. The input dataset is not mutated; the sample shares its
// row storage.
func BalancedSample(ds *domain.Dataset, perClass int, seed int64) (*domain.Dataset, error) {
	fraudIdx := ds.RowIndicesByClass(domain.ClassFraud)
	legitIdx := ds.RowIndicesByClass(domain.ClassLegitimate)

	if len(fraudIdx) < perClass {
		return nil, &domain.InsufficientRowsError{Class: domain.ClassFraud.String(), Have: len(fraudIdx), Want: perClass}
	}
	if len(legitIdx) < perClass {
		return nil, &domain.InsufficientRowsError{Class: domain.ClassLegitimate.String(), Have: len(legitIdx), Want: perClass}
	}

	rng := rand.New(rand.NewSource(seed))
	selected := make([]int, 0, 2*perClass)
	selected = append(selected, draw(rng, fraudIdx, perClass)...)
	selected = append(selected, draw(rng, legitIdx, perClass)...)

	return ds.Select(selected), nil
}

func draw(rng *rand.Rand, indices []int, n int) []int {
	out := make([]int, 0, n)
	for _, p := range rng.Perm(len(indices))[:n] {
		out = append(out, indices[p])
	}
	return out
}
