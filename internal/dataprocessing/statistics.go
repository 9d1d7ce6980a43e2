package dataprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ecofuturo/pkg/contracts/domain"
)

// Describe computes count, mean, sample standard deviation, min, quartiles and max.
// Undefined statistics are NaN: everything but Count for an empty sample,
// and Std for a single value.
func Describe(values []float64) domain.Describe {
	nan := math.NaN()
	d := domain.Describe{
		Count: len(values),
		Mean:  nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan,
	}
	if len(values) == 0 {
		return d
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q25 = Quantile(sorted, 0.25)
	d.Q50 = Quantile(sorted, 0.50)
	d.Q75 = Quantile(sorted, 0.75)
	return d
}

// Quantile returns the p-quantile of sorted data, interpolating linearly
// between the closest ranks at position (n-1)p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// TotalCapacity sums Capacidad over the table
func TotalCapacity(table *domain.ProjectTable) float64 {
	if table.Len() == 0 {
		return 0
	}
	return floats.Sum(table.Capacities())
}
