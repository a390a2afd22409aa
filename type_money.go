package capgains

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of fractional digits kept by Money.Div.
const divisionPrecision = 28

// ErrDivisionByZero is returned when scaling a Money down by a zero quantity.
var ErrDivisionByZero = errors.New("division by zero")

// Money represents an exact monetary amount with an optional currency.
//
// The zero value is a zero amount with no currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string          // upper case ISO code, or "" when absent
}

// M is a convenient factory for Money. The currency is optional.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: strings.ToUpper(currency)}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money { return Money{cur: strings.ToUpper(currency)} }

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) Abs() Money              { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Neg() Money              { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n int64) Money       { return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur} }

// Equal reports whether m and n have the same currency and the same numerical value.
// Trailing zeros are not significant.
func (m Money) Equal(n Money) bool { return m.cur == n.cur && m.value.Equal(n.value) }

// Div divides m by n.
func (m Money) Div(n int64) (Money, error) {
	if n == 0 {
		return Money{}, ErrDivisionByZero
	}
	return Money{value: m.value.DivRound(decimal.NewFromInt(n), divisionPrecision), cur: m.cur}, nil
}

// Add returns m+n. Both must share the same currency.
func (m Money) Add(n Money) (Money, error) {
	if err := sameCurrency(m, n); err != nil {
		return Money{}, err
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}, nil
}

// Sub returns m-n. Both must share the same currency.
func (m Money) Sub(n Money) (Money, error) {
	if err := sameCurrency(m, n); err != nil {
		return Money{}, err
	}
	return Money{value: m.value.Sub(n.value), cur: m.cur}, nil
}

func sameCurrency(a, b Money) error {
	if !strings.EqualFold(a.cur, b.cur) {
		return &CurrencyMismatchError{Left: a.cur, Right: b.cur}
	}
	return nil
}

var ten = big.NewInt(10)

// Normalize returns the same amount without redundant trailing zero digits.
// 12.500 becomes 12.5, 500.00 becomes 500.
func (m Money) Normalize() Money {
	coef := m.value.Coefficient()
	exp := m.value.Exponent()
	if coef.Sign() == 0 {
		return Money{value: decimal.Zero, cur: m.cur}
	}
	q, r := new(big.Int), new(big.Int)
	for exp < 0 {
		q.QuoRem(coef, ten, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		exp++
	}
	return Money{value: decimal.NewFromBigInt(coef, exp), cur: m.cur}
}

// String returns the canonical representation: normalized digits followed by the
// currency code if any, e.g. "-100" or "12.5 EUR".
func (m Money) String() string {
	s := m.Normalize().value.String()
	if m.cur == "" {
		return s
	}
	return s + " " + m.cur
}

// Display returns a human representation of the amount, rounded to the
// currency's usual fraction (e.g. "€12.50"). Amounts without a known currency
// fall back to the canonical representation.
func (m Money) Display() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.String()
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

var (
	moneyPrefixed = regexp.MustCompile(`^(?i)([a-z]{3})\s*(-?[0-9][0-9,.]*)$`)
	moneySuffixed = regexp.MustCompile(`^(?i)(-?[0-9][0-9,.]*)\s*([a-z]{3})$`)
)

// ParseMoney parses an amount with an optional currency code either as a prefix
// ("EUR 12.5") or a suffix ("12.5 EUR"). Without a currency token, the text is
// parsed as a plain number.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	var amount, currency string
	if m := moneyPrefixed.FindStringSubmatch(s); m != nil {
		currency, amount = m[1], m[2]
	} else if m := moneySuffixed.FindStringSubmatch(s); m != nil {
		amount, currency = m[1], m[2]
	} else {
		amount = s
	}

	if currency != "" {
		currency = strings.ToUpper(currency)
		if money.GetCurrency(currency) == nil {
			return Money{}, fmt.Errorf("invalid money %q: unknown currency %q", s, currency)
		}
	}

	amount, err := normalizeSeparators(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", s, err)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", s, err)
	}
	return Money{value: d, cur: currency}, nil
}

// normalizeSeparators rewrites an amount with a dot as the decimal separator.
// The last of "." and "," is the decimal separator, the other one groups
// thousands. A single comma followed by exactly three digits is ambiguous.
func normalizeSeparators(s string) (string, error) {
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot < 0 && comma < 0:
		return s, nil
	case comma < 0:
		if strings.Count(s, ".") > 1 {
			return ungroup(s, ".")
		}
		return s, nil
	case dot < 0:
		if strings.Count(s, ",") > 1 {
			return ungroup(s, ",")
		}
		if len(s)-comma-1 == 3 {
			return "", fmt.Errorf("ambiguous separator in %q", s)
		}
		return strings.Replace(s, ",", ".", 1), nil
	case dot > comma:
		whole, err := ungroup(s[:dot], ",")
		if err != nil {
			return "", err
		}
		return whole + s[dot:], nil
	default:
		whole, err := ungroup(s[:comma], ".")
		if err != nil {
			return "", err
		}
		return whole + "." + s[comma+1:], nil
	}
}

// ungroup removes the thousands separator sep from the integer part s.
func ungroup(s, sep string) (string, error) {
	groups := strings.Split(s, sep)
	if n := len(strings.TrimPrefix(groups[0], "-")); n == 0 || n > 3 {
		return "", fmt.Errorf("misplaced %q separator in %q", sep, s)
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", fmt.Errorf("misplaced %q separator in %q", sep, s)
		}
	}
	return strings.Join(groups, ""), nil
}

// MustParseMoney is like ParseMoney but panics on error.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err.Error())
	}
	return m
}
