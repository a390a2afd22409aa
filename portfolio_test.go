package capgains

import (
	"errors"
	"iter"
	"testing"

	"github.com/etnz/capgains/date"
)

func TestPortfolio_Scenarios(t *testing.T) {
	testCases := []struct {
		name  string
		txs   []Transaction
		carry int
		year  int
		want  Money
	}{
		{
			name: "loss in the target year",
			txs: []Transaction{
				buy("2020-01-01", "1", 1, 500),
				sell("2021-01-01", "1", 1, 400),
			},
			carry: 1, year: 2021,
			want: NO(-100),
		},
		{
			name: "loss and gain in the same year",
			txs: []Transaction{
				buy("2020-01-01", "1", 1, 500),
				buy("2020-01-01", "2", 1, 500),
				sell("2021-01-01", "1", 1, 400),
				sell("2021-01-01", "2", 1, 500),
			},
			carry: 1, year: 2021,
			want: NO(-100),
		},
		{
			name: "loss carried from the previous year",
			txs: []Transaction{
				buy("2020-01-01", "2", 1, 500),
				buy("2020-01-01", "1", 2, 1000),
				sell("2020-06-01", "1", 1, 400),
				sell("2021-01-01", "1", 1, 400),
				sell("2021-01-01", "2", 1, 400),
			},
			carry: 2, year: 2021,
			want: NO(-300),
		},
		{
			name: "without carry",
			txs: []Transaction{
				buy("2020-01-01", "1", 2, 1000),
				sell("2020-06-01", "1", 1, 400),
				sell("2021-01-01", "1", 1, 600),
			},
			carry: 0, year: 2021,
			want: NO(100),
		},
		{
			name: "later sales are ignored",
			txs: []Transaction{
				buy("2020-01-01", "1", 2, 1000),
				sell("2020-06-01", "1", 1, 600),
				sell("2021-01-01", "1", 1, 100),
			},
			carry: 0, year: 2020,
			want: NO(100),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := WithCarryLosses(Transactions(tc.txs...), tc.carry).Report(tc.year)
			if err != nil {
				t.Fatalf("Report() error = %v", err)
			}
			got, err := r.AdjustedProfit()
			if err != nil {
				t.Fatalf("AdjustedProfit() error = %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("AdjustedProfit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPortfolio_OutOfOrder(t *testing.T) {
	txs := Transactions(
		buy("2020-02-01", "1", 1, 500),
		buy("2020-01-01", "1", 1, 500),
	)
	_, err := New(txs).Report(2020)
	var ooo *OutOfOrderInputError
	if !errors.As(err, &ooo) {
		t.Fatalf("Report() error = %v, want OutOfOrderInputError", err)
	}
	if ooo.Date != date.New(2020, 2, 1) || ooo.Next != date.New(2020, 1, 1) {
		t.Errorf("Report() error = %+v, want 2020-02-01 followed by 2020-01-01", ooo)
	}
}

func TestPortfolio_SellWithoutPosition(t *testing.T) {
	_, err := New(Transactions(sell("2020-01-01", "1", 1, 100))).Report(2020)
	var noPosition *SellWithoutPriorPositionError
	if !errors.As(err, &noPosition) {
		t.Errorf("Report() error = %v, want SellWithoutPriorPositionError", err)
	}
}

// failingAfter yields txs then fails.
func failingAfter(failure error, txs ...Transaction) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		for _, tx := range txs {
			if !yield(tx, nil) {
				return
			}
		}
		yield(Transaction{}, failure)
	}
}

func TestPortfolio_IngestionError(t *testing.T) {
	failure := errors.New("disk on fire")
	_, err := New(failingAfter(failure, buy("2020-01-01", "1", 1, 500))).Report(2020)
	var ingestion *IngestionError
	if !errors.As(err, &ingestion) {
		t.Fatalf("Report() error = %v, want IngestionError", err)
	}
	if !errors.Is(err, failure) {
		t.Errorf("Report() error = %v, want it to wrap %v", err, failure)
	}
}

func TestPortfolio_StopsAfterTargetYear(t *testing.T) {
	// the source fails after the first transaction of 2021, which must never be reached.
	src := failingAfter(errors.New("read too far"),
		buy("2020-01-01", "1", 1, 500),
		sell("2020-06-01", "1", 1, 600),
		sell("2021-01-01", "1", 1, 100),
	)
	r, err := New(src).Report(2020)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	got, err := r.Profit()
	if err != nil {
		t.Fatalf("Profit() error = %v", err)
	}
	if !got.Equal(NO(100)) {
		t.Errorf("Profit() = %v, want 100", got)
	}
	if _, ok := r.Bucket(2021); ok {
		t.Errorf("Bucket(2021) found, want no data after the target year")
	}
}

func TestPortfolio_Trace(t *testing.T) {
	var traced []string
	p := New(Transactions(
		buy("2020-01-01", "1", 2, 1000),
		sell("2020-06-01", "1", 1, 400),
		sell("2020-07-01", "1", 1, 700),
	)).Trace(func(tx Transaction, realized Money) {
		traced = append(traced, tx.OrderID+" "+realized.String())
	})
	if _, err := p.Report(2020); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	want := []string{"sell-1-2020-06-01 -100", "sell-1-2020-07-01 200"}
	if len(traced) != len(want) {
		t.Fatalf("traced %v, want %v", traced, want)
	}
	for i := range want {
		if traced[i] != want[i] {
			t.Errorf("traced[%d] = %q, want %q", i, traced[i], want[i])
		}
	}
}
