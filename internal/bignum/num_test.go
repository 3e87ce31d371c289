package bignum

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"42", "42"},
		{"1.5", "1.5"},
		{"1.50", "1.5"},
		{"  7  ", "7"},
		{"1e3", "1000"},
		{"12345678901234567890123", "12345678901234567890123"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if n.String() != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, n.String(), tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "NaN", "1..2", "-5", "--1"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, ErrInvalidNumericInput) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidNumericInput", input, err)
			}
		})
	}
}

func TestFromFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		if _, err := FromFloat(f); !errors.Is(err, ErrInvalidNumericInput) {
			t.Errorf("FromFloat(%v) error = %v, want ErrInvalidNumericInput", f, err)
		}
	}

	n, err := FromFloat(0.6)
	if err != nil {
		t.Fatalf("FromFloat(0.6) failed: %v", err)
	}
	if n.String() != "0.6" {
		t.Errorf("FromFloat(0.6) = %s, want 0.6", n)
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"0",
		"1",
		"0.125",
		"999999999999999999999",
		"1e500",
		"123456789e990",
	}

	for _, input := range inputs {
		n := MustParse(input)
		s := n.String()
		again, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if again.String() != s {
			t.Errorf("round trip of %q: got %q", s, again.String())
		}
		if !again.EQ(n) {
			t.Errorf("round trip of %q changed the value", input)
		}
	}
}

func TestLargeMagnitudeIsExact(t *testing.T) {
	n := MustParse("1e500")
	s := n.String()
	if len(s) != 501 || s[0] != '1' || strings.Trim(s[1:], "0") != "" {
		t.Fatalf("1e500 did not expand to 1 followed by 500 zeros (len %d)", len(s))
	}

	sum := n.Add(One())
	if sum.String()[500] != '1' {
		t.Error("adding 1 to 1e500 lost precision")
	}

	if !math.IsInf(n.Float64(), 1) {
		t.Errorf("Float64() of 1e500 = %v, want +Inf", n.Float64())
	}
}

func TestSubClampsToZero(t *testing.T) {
	a := FromInt(5)
	b := FromInt(8)

	if got := a.Sub(b); !got.IsZero() {
		t.Errorf("5 - 8 = %s, want 0", got)
	}
	if got := b.Sub(a); got.String() != "3" {
		t.Errorf("8 - 5 = %s, want 3", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10")
	b := MustParse("4")

	if got := a.Mul(b).String(); got != "40" {
		t.Errorf("10 * 4 = %s", got)
	}
	if got := a.Div(b).String(); got != "2.5" {
		t.Errorf("10 / 4 = %s", got)
	}
	if got := a.Div(Zero()); !got.IsZero() {
		t.Errorf("10 / 0 = %s, want 0", got)
	}
	if got := a.MulFloat(1.5).String(); got != "15" {
		t.Errorf("10 * 1.5 = %s", got)
	}
	if got := MustParse("2.7").Floor().String(); got != "2" {
		t.Errorf("floor(2.7) = %s", got)
	}
	if got := MustParse("1.1").PowInt(2).String(); got != "1.21" {
		t.Errorf("1.1^2 = %s", got)
	}
	if got := a.PowInt(0).String(); got != "1" {
		t.Errorf("10^0 = %s", got)
	}
}

func TestComparisons(t *testing.T) {
	small := FromInt(1)
	big := MustParse("1e100")

	if !big.GT(small) || !big.GTE(small) || big.LT(small) || big.LTE(small) {
		t.Error("1e100 should compare greater than 1")
	}
	if !MustParse("1.50").EQ(MustParse("1.5")) {
		t.Error("1.50 should equal 1.5")
	}
	if Max(small, big) != big {
		t.Error("Max returned the smaller value")
	}
}

func TestInt64Saturates(t *testing.T) {
	if got := MustParse("1e40").Int64(); got != math.MaxInt64 {
		t.Errorf("Int64() of 1e40 = %d, want MaxInt64", got)
	}
	if got := MustParse("12.9").Int64(); got != 12 {
		t.Errorf("Int64() of 12.9 = %d, want 12", got)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.345", "12.35"},
		{"1234", "1,234"},
		{"123456789012345", "123,456,789,012,345"},
		{"1234567890123456", "1.23e15"},
		{"1e500", "1.00e500"},
	}

	for _, tt := range tests {
		if got := MustParse(tt.input).Short(); got != tt.want {
			t.Errorf("Short(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Sips Num `json:"sips"`
	}

	data, err := json.Marshal(wrapper{Sips: MustParse("1e30")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"1000000000000000000000000000000"`) {
		t.Errorf("expected quoted decimal string, got %s", data)
	}

	var fromNumber wrapper
	if err := json.Unmarshal([]byte(`{"sips": 12.5}`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if fromNumber.Sips.String() != "12.5" {
		t.Errorf("got %s, want 12.5", fromNumber.Sips)
	}

	var bad wrapper
	if err := json.Unmarshal([]byte(`{"sips": "lots"}`), &bad); !errors.Is(err, ErrInvalidNumericInput) {
		t.Errorf("Unmarshal garbage error = %v, want ErrInvalidNumericInput", err)
	}
}
