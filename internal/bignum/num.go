// Package bignum provides the arbitrary-precision currency type used for sips
// and production values. A Num is a non-negative decimal with a big-integer
// coefficient and an integer exponent, so magnitudes far beyond float64 stay
// exact.
package bignum

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidNumericInput is returned when a value cannot be turned into a Num.
var ErrInvalidNumericInput = errors.New("bignum: invalid numeric input")

// shortThreshold is the number of integer digits above which Short switches
// to exponential notation.
const shortThreshold = 15

// Num is an immutable non-negative arbitrary-precision number.
// The zero value is 0 and ready to use.
type Num struct {
	d decimal.Decimal
}

// Zero returns 0.
func Zero() Num { return Num{} }

// One returns 1.
func One() Num { return Num{d: decimal.NewFromInt(1)} }

// FromInt converts an integer. Negative values clamp to zero.
func FromInt(n int64) Num {
	if n <= 0 {
		return Num{}
	}
	return Num{d: decimal.NewFromInt(n)}
}

// FromFloat converts a float64. NaN, infinities and negative values are rejected.
func FromFloat(f float64) (Num, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Num{}, fmt.Errorf("%w: %v", ErrInvalidNumericInput, f)
	}
	if f < 0 {
		return Num{}, fmt.Errorf("%w: negative value %v", ErrInvalidNumericInput, f)
	}
	return Num{d: decimal.NewFromFloat(f)}, nil
}

// Parse reads a decimal or exponential string such as "42", "1.5" or "1e500".
func Parse(s string) (Num, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Num{}, fmt.Errorf("%w: empty string", ErrInvalidNumericInput)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Num{}, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	if d.Sign() < 0 {
		return Num{}, fmt.Errorf("%w: negative value %q", ErrInvalidNumericInput, s)
	}
	return Num{d: d}, nil
}

// MustParse is like Parse but panics on error. Use for constants only.
func MustParse(s string) Num {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Add returns n + o.
func (n Num) Add(o Num) Num { return Num{d: n.d.Add(o.d)} }

// Sub returns n - o, clamped to zero. Currency cannot go negative.
func (n Num) Sub(o Num) Num {
	r := n.d.Sub(o.d)
	if r.Sign() < 0 {
		return Num{}
	}
	return Num{d: r}
}

// Mul returns n * o.
func (n Num) Mul(o Num) Num { return Num{d: n.d.Mul(o.d)} }

// MulInt returns n * k. Negative k yields zero.
func (n Num) MulInt(k int64) Num {
	if k <= 0 {
		return Num{}
	}
	return Num{d: n.d.Mul(decimal.NewFromInt(k))}
}

// MulFloat returns n * f. Non-finite or negative factors yield zero.
func (n Num) MulFloat(f float64) Num {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return Num{}
	}
	return Num{d: n.d.Mul(decimal.NewFromFloat(f))}
}

// Div returns n / o. Division by zero yields zero.
func (n Num) Div(o Num) Num {
	if o.d.IsZero() {
		return Num{}
	}
	return Num{d: n.d.Div(o.d)}
}

// Floor rounds down to an integer.
func (n Num) Floor() Num { return Num{d: n.d.Floor()} }

// PowFloat returns base^exp for a non-negative integer exponent using exact
// repeated squaring.
func PowFloat(base float64, exp int) (Num, error) {
	b, err := FromFloat(base)
	if err != nil {
		return Num{}, err
	}
	return b.PowInt(exp), nil
}

// PowInt returns n^exp. Negative exponents are treated as zero.
func (n Num) PowInt(exp int) Num {
	result := decimal.NewFromInt(1)
	base := n.d
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		if e > 1 {
			base = base.Mul(base)
		}
	}
	return Num{d: result}
}

// Cmp compares n and o and returns -1, 0 or +1.
func (n Num) Cmp(o Num) int { return n.d.Cmp(o.d) }

// GTE reports n >= o.
func (n Num) GTE(o Num) bool { return n.d.Cmp(o.d) >= 0 }

// GT reports n > o.
func (n Num) GT(o Num) bool { return n.d.Cmp(o.d) > 0 }

// LTE reports n <= o.
func (n Num) LTE(o Num) bool { return n.d.Cmp(o.d) <= 0 }

// LT reports n < o.
func (n Num) LT(o Num) bool { return n.d.Cmp(o.d) < 0 }

// EQ reports n == o by value, so 1.50 equals 1.5.
func (n Num) EQ(o Num) bool { return n.d.Cmp(o.d) == 0 }

// IsZero reports whether n is 0.
func (n Num) IsZero() bool { return n.d.IsZero() }

// Max returns the larger of a and b.
func Max(a, b Num) Num {
	if a.GTE(b) {
		return a
	}
	return b
}

// String returns the exact decimal representation. It never goes through
// float64, so Parse(n.String()) reproduces n exactly.
func (n Num) String() string { return n.d.String() }

// Float64 returns a lossy float64 for display. Magnitudes beyond the float64
// range saturate to +Inf. Never use it for persisted or compared values.
func (n Num) Float64() float64 {
	f, _ := n.d.Float64()
	return f
}

// Int64 returns the integer part, saturating at math.MaxInt64.
func (n Num) Int64() int64 {
	bi := n.d.Floor().BigInt()
	if !bi.IsInt64() {
		return math.MaxInt64
	}
	return bi.Int64()
}

// BigInt returns the integer part as a big.Int.
func (n Num) BigInt() *big.Int { return n.d.Floor().BigInt() }

// Short formats n for display: two decimals for small values, grouped digits
// up to 15 integer digits, and mantissa/exponent form beyond that.
func (n Num) Short() string {
	if n.d.LessThan(decimal.NewFromInt(1000)) {
		return n.d.Round(2).String()
	}
	digits := n.BigInt().String()
	if len(digits) <= shortThreshold {
		return humanize.BigComma(n.BigInt())
	}
	exp := len(digits) - 1
	return digits[:1] + "." + digits[1:3] + "e" + strconv.Itoa(exp)
}

// MarshalJSON encodes n as a JSON string so precision survives the round trip.
func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(n.String())), nil
}

// UnmarshalJSON accepts a JSON string or a bare JSON number.
func (n *Num) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Num{}
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidNumericInput, s)
		}
		s = unq
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
