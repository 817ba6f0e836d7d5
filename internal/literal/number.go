// Package literal formats literal values the way Ruby's lexer reads them
// back.
package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Named constants for non-finite floats.
const (
	Infinity         = "Float::INFINITY"
	NegativeInfinity = "-Float::INFINITY"
	NaN              = "Float::NAN"
)

// Integer formats an integer child value in decimal.
func Integer(v any) (string, error) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	case *big.Int:
		if x == nil {
			return "", fmt.Errorf("nil integer")
		}
		return x.String(), nil
	default:
		return "", fmt.Errorf("integer value of type %T", v)
	}
}

// Float formats f like Ruby's Float#to_s: fixed notation when the decimal
// exponent is in (-4, 16], scientific notation with a two-digit exponent
// otherwise. Non-finite values map to the Float constants.
func Float(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return Infinity
	case math.IsInf(f, -1):
		return NegativeInfinity
	case math.IsNaN(f):
		return NaN
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits: "d.ddde±XX".
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	x, _ := strconv.Atoi(exp)
	decpt := x + 1 // digits before the decimal point

	var sb strings.Builder
	sb.WriteString(sign)
	switch {
	case decpt > 0 && decpt <= 16:
		if len(digits) <= decpt {
			sb.WriteString(digits)
			sb.WriteString(strings.Repeat("0", decpt-len(digits)))
			sb.WriteString(".0")
		} else {
			sb.WriteString(digits[:decpt])
			sb.WriteByte('.')
			sb.WriteString(digits[decpt:])
		}
	case decpt <= 0 && decpt > -4:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -decpt))
		sb.WriteString(digits)
	default:
		sb.WriteByte(digits[0])
		sb.WriteByte('.')
		if len(digits) > 1 {
			sb.WriteString(digits[1:])
		} else {
			sb.WriteByte('0')
		}
		fmt.Fprintf(&sb, "e%+03d", decpt-1)
	}
	return sb.String()
}

// Rational formats a rational literal: `3r`, `1.5r`, `-0.25r`. Values
// with a non-decimal expansion are written as the equivalent division
// `1/3r`.
func Rational(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String() + "r"
	}
	if n, ok := decimalPlaces(r.Denom()); ok {
		return r.FloatString(n) + "r"
	}
	return r.Num().String() + "/" + r.Denom().String() + "r"
}

// IsFraction reports whether Rational writes r as `num/denr`, a division
// rather than a single literal.
func IsFraction(r *big.Rat) bool {
	if r.IsInt() {
		return false
	}
	_, ok := decimalPlaces(r.Denom())
	return !ok
}

// decimalPlaces returns n such that d divides 10^n, if there is one.
func decimalPlaces(d *big.Int) (int, bool) {
	two, five := big.NewInt(2), big.NewInt(5)
	rest := new(big.Int).Set(d)
	mod := new(big.Int)
	twos, fives := 0, 0
	for {
		q, m := new(big.Int).QuoRem(rest, two, mod)
		if m.Sign() != 0 {
			break
		}
		rest, twos = q, twos+1
	}
	for {
		q, m := new(big.Int).QuoRem(rest, five, mod)
		if m.Sign() != 0 {
			break
		}
		rest, fives = q, fives+1
	}
	if rest.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	return max(twos, fives), true
}

// Imaginary formats the imaginary part of a complex literal: `2i`,
// `1.5i`.
func Imaginary(c complex128) (string, error) {
	if real(c) != 0 {
		return "", fmt.Errorf("imaginary literal with real part %v", real(c))
	}
	im := imag(c)
	if math.IsInf(im, 0) || math.IsNaN(im) {
		return "", fmt.Errorf("non-finite imaginary literal %v", im)
	}
	if im == math.Trunc(im) && math.Abs(im) < 1e15 {
		return strconv.FormatFloat(im, 'f', -1, 64) + "i", nil
	}
	return Float(im) + "i", nil
}
