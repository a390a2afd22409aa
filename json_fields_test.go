package capgains

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFields(t *testing.T) {
	testCases := []struct {
		name string
		f    *fields
		want string
	}{
		{"empty object", &fields{}, "{}"},
		{
			"insertion order",
			new(fields).Set("year", 2021).Set("currency", "EUR").Set("amount", decimal.RequireFromString("-12.5")),
			`{"year":2021,"currency":"EUR","amount":-12.5}`,
		},
		{
			"empty strings are skipped",
			new(fields).Set("a", 0).SetString("b", "").SetString("c", "hello"),
			`{"a":0,"c":"hello"}`,
		},
		{
			"nested objects",
			new(fields).Set("years", []*fields{new(fields).Set("year", 2020), new(fields).Set("year", 2021)}),
			`{"years":[{"year":2020},{"year":2021}]}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.f.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFields_Error(t *testing.T) {
	f := new(fields).Set("a", 1).Set("nan", math.NaN())
	if _, err := f.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() succeeded with NaN, want error")
	}
}
