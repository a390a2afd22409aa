package capgains

import (
	"errors"
	"maps"
	"slices"
)

// Report is an immutable view over the realized results per year, focused on a
// target year.
type Report struct {
	buckets    map[int]YearBucket
	year       int
	carryYears int
}

// NewReport returns a report for year, carrying losses from at most carryYears
// previous years. buckets is copied.
func NewReport(buckets map[int]YearBucket, year, carryYears int) *Report {
	if carryYears < 0 {
		carryYears = 0
	}
	return &Report{buckets: cloneBuckets(buckets), year: year, carryYears: carryYears}
}

// Year returns the target year.
func (r *Report) Year() int { return r.year }

// CarryYears returns the number of previous years whose losses can be carried.
func (r *Report) CarryYears() int { return r.carryYears }

// Years returns the years with realized results, in ascending order.
func (r *Report) Years() []int { return slices.Sorted(maps.Keys(r.buckets)) }

// Bucket returns the realized results for year.
func (r *Report) Bucket(year int) (YearBucket, bool) {
	b, ok := r.buckets[year]
	return b, ok
}

// Window returns the years considered for carrying losses, in ascending order,
// up to and including the target year.
func (r *Report) Window() []int {
	var years []int
	for _, y := range r.Years() {
		if y >= r.year-r.carryYears && y <= r.year {
			years = append(years, y)
		}
	}
	return years
}

// Profit returns the net realized result of the target year.
func (r *Report) Profit() (Money, error) {
	b, ok := r.buckets[r.year]
	if !ok {
		return Money{}, &MissingYearDataError{Year: r.year}
	}
	return b.Net()
}

// AdjustedProfit returns the net realized result of the target year, reduced
// by the losses of the previous years that have not been absorbed by later
// gains yet.
func (r *Report) AdjustedProfit() (Money, error) {
	res, err := r.resolve()
	if err != nil {
		return Money{}, err
	}
	profit := res.profit
	if res.state == carrying {
		if profit, err = profit.Add(res.carried); err != nil {
			return Money{}, err
		}
	}
	return profit.Normalize(), nil
}

// CarriedLoss returns the balance of previous years losses that is still
// negative when reaching the target year, or zero.
func (r *Report) CarriedLoss() (Money, error) {
	res, err := r.resolve()
	if err != nil {
		return Money{}, err
	}
	if res.state != carrying {
		return Zero(res.profit.Currency()), nil
	}
	return res.carried.Normalize(), nil
}

// carryState is the state of the loss carry resolver.
type carryState int

const (
	idle     carryState = iota // no loss being carried
	carrying                   // a negative balance is being carried over
)

type resolution struct {
	profit  Money // net result of the target year
	carried Money // running carried balance
	state   carryState
}

// resolve scans the window in ascending order. A negative year opens a carry
// episode, next years are absorbed into it until the balance turns non-negative.
// The scan stops on the target year, which never feeds the episode.
func (r *Report) resolve() (resolution, error) {
	var res resolution
	found := false
	for _, y := range r.Window() {
		net, err := r.buckets[y].Net()
		if err != nil {
			return resolution{}, err
		}
		if y == r.year {
			res.profit, found = net, true
			break
		}

		switch {
		case res.state == idle && net.IsNegative():
			res.state, res.carried = carrying, net
		case res.state == carrying:
			if res.carried, err = res.carried.Add(net); err != nil {
				return resolution{}, err
			}
			if !res.carried.IsNegative() {
				res.state, res.carried = idle, Zero(res.carried.Currency())
			}
		}
	}

	if !found {
		// no realized result in the target year: it nets to zero.
		res.profit = Zero(r.currency(res))
	}
	return res, nil
}

// currency guesses the reporting currency from the carried balance or any bucket.
func (r *Report) currency(res resolution) string {
	if res.state == carrying {
		return res.carried.Currency()
	}
	if years := r.Years(); len(years) > 0 {
		return r.buckets[years[0]].Gains.Currency()
	}
	return ""
}

// MarshalJSON implements the json.Marshaler interface.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w fields
	w.Set("year", r.year)
	w.Set("carryYears", r.carryYears)

	years := make([]*fields, 0, len(r.buckets))
	for _, y := range r.Years() {
		b := r.buckets[y]
		net, err := b.Net()
		if err != nil {
			return nil, err
		}
		bw := new(fields).Set("year", y).SetString("currency", net.Currency())
		bw.Set("gains", b.Gains.Normalize().Amount())
		bw.Set("losses", b.Losses.Normalize().Amount())
		bw.Set("net", net.Normalize().Amount())
		years = append(years, bw)
	}
	w.Set("years", years)

	profit, err := r.Profit()
	var missing *MissingYearDataError
	switch {
	case errors.As(err, &missing):
	case err != nil:
		return nil, err
	default:
		w.Set("profit", profit.Normalize().Amount())
	}

	carried, err := r.CarriedLoss()
	if err != nil {
		return nil, err
	}
	adjusted, err := r.AdjustedProfit()
	if err != nil {
		return nil, err
	}
	w.Set("carriedLoss", carried.Amount())
	w.Set("adjustedProfit", adjusted.Amount())
	w.SetString("currency", adjusted.Currency())
	return w.MarshalJSON()
}
