package capgains

import (
	"fmt"
	"maps"
)

// YearBucket holds the realized gains and losses of a calendar year.
// They are kept apart and only netted when read.
type YearBucket struct {
	Gains  Money // sum of the non-negative realized results
	Losses Money // sum of the negative realized results
}

// Net returns gains plus losses.
func (b YearBucket) Net() (Money, error) { return b.Gains.Add(b.Losses) }

// Accumulator collects realized results per calendar year.
//
// Its zero value is ready to use.
type Accumulator struct {
	buckets map[int]*YearBucket
}

// Record adds a realized result into the year's bucket, creating it if needed.
func (a *Accumulator) Record(year int, realized Money) error {
	if a.buckets == nil {
		a.buckets = make(map[int]*YearBucket)
	}
	b, ok := a.buckets[year]
	if !ok {
		cur := realized.Currency()
		b = &YearBucket{Gains: Zero(cur), Losses: Zero(cur)}
		a.buckets[year] = b
	}

	var err error
	if realized.IsNegative() {
		b.Losses, err = b.Losses.Add(realized)
	} else {
		b.Gains, err = b.Gains.Add(realized)
	}
	if err != nil {
		return fmt.Errorf("recording %s in %d: %w", realized, year, err)
	}
	return nil
}

// Buckets returns a copy of the year buckets.
func (a *Accumulator) Buckets() map[int]YearBucket {
	res := make(map[int]YearBucket, len(a.buckets))
	for y, b := range a.buckets {
		res[y] = *b
	}
	return res
}

// Report freezes the buckets into a Report for year.
func (a *Accumulator) Report(year, carryYears int) *Report {
	return NewReport(a.Buckets(), year, carryYears)
}

// cloneBuckets is used by reports to guarantee immutability.
func cloneBuckets(b map[int]YearBucket) map[int]YearBucket {
	if b == nil {
		return map[int]YearBucket{}
	}
	return maps.Clone(b)
}
