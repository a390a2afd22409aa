package renderer

import (
	"errors"

	"github.com/etnz/capgains"
)

// Report is the printable form of a capgains.Report: amounts are already
// formatted for display.
type Report struct {
	Year           int        `json:"year"`
	CarryYears     int        `json:"carryYears"`
	Years          []YearLine `json:"years"`
	HasProfit      bool       `json:"hasProfit"`
	Profit         string     `json:"profit,omitempty"`
	CarriedLoss    string     `json:"carriedLoss"`
	AdjustedProfit string     `json:"adjustedProfit"`
}

// YearLine is the realized result of a single year of the carry window.
type YearLine struct {
	Year   int    `json:"year"`
	Gains  string `json:"gains"`
	Losses string `json:"losses"`
	Net    string `json:"net"`
}

// NewReport prepares r for rendering.
func NewReport(r *capgains.Report) (*Report, error) {
	res := &Report{
		Year:       r.Year(),
		CarryYears: r.CarryYears(),
		Years:      []YearLine{},
	}

	for _, y := range r.Window() {
		b, _ := r.Bucket(y)
		net, err := b.Net()
		if err != nil {
			return nil, err
		}
		res.Years = append(res.Years, YearLine{
			Year:   y,
			Gains:  b.Gains.Display(),
			Losses: b.Losses.Display(),
			Net:    net.Display(),
		})
	}

	profit, err := r.Profit()
	var missing *capgains.MissingYearDataError
	switch {
	case errors.As(err, &missing):
	case err != nil:
		return nil, err
	default:
		res.HasProfit, res.Profit = true, profit.Display()
	}

	carried, err := r.CarriedLoss()
	if err != nil {
		return nil, err
	}
	adjusted, err := r.AdjustedProfit()
	if err != nil {
		return nil, err
	}
	res.CarriedLoss = carried.Display()
	res.AdjustedProfit = adjusted.Display()
	return res, nil
}
