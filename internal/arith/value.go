// Package arith implements the calculator's arbitrary-precision decimal
// arithmetic. Every operation rounds its result to a working precision of
// 16 significant digits, rounding half away from zero, so chained results
// match a fixed-precision decimal context operation for operation.
package arith

import (
	"errors"
	"fmt"
	"math"

	"github.com/db47h/decimal"
)

// Precision is the working precision in significant decimal digits.
const Precision = 16

// maxPlainLen is the longest plain rendering Format will produce before
// switching to scientific notation.
const maxPlainLen = 24

var (
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeOperand is returned by Sqrt for negative input.
	ErrNegativeOperand = errors.New("square root of negative value")

	// ErrOverflow is returned by Sqrt when the operand is too large to
	// seed the refinement loop.
	ErrOverflow = errors.New("value out of range")
)

var (
	two     = new(decimal.Decimal).SetInt64(2)
	hundred = new(decimal.Decimal).SetInt64(100)
)

// Value is an immutable arbitrary-precision decimal. The zero Value is 0.
type Value struct {
	d *decimal.Decimal
}

// working returns a fresh decimal configured with the working precision and
// rounding mode. All arithmetic results are committed through one of these.
func working() *decimal.Decimal {
	return new(decimal.Decimal).SetMode(decimal.ToNearestAway).SetPrec(Precision)
}

func (v Value) ref() *decimal.Decimal {
	if v.d == nil {
		return new(decimal.Decimal)
	}
	return v.d
}

// Zero returns the value 0.
func Zero() Value { return Value{} }

// Parse converts a decimal literal into a Value. Literals longer than the
// working precision are kept exact; rounding happens only when they enter
// an arithmetic operation.
func Parse(s string) (Value, error) {
	prec := uint(Precision)
	if n := digitLen(s); n > Precision {
		prec = uint(n)
	}
	d, ok := new(decimal.Decimal).SetMode(decimal.ToNearestAway).SetPrec(prec).SetString(s)
	if !ok {
		return Value{}, fmt.Errorf("invalid decimal literal %q", s)
	}
	return Value{d}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func digitLen(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Add returns v + o rounded to the working precision.
func (v Value) Add(o Value) Value {
	return Value{working().Add(v.ref(), o.ref())}
}

// Sub returns v - o rounded to the working precision.
func (v Value) Sub(o Value) Value {
	return Value{working().Sub(v.ref(), o.ref())}
}

// Mul returns v * o rounded to the working precision.
func (v Value) Mul(o Value) Value {
	return Value{working().Mul(v.ref(), o.ref())}
}

// Div returns v / o rounded to the working precision, or ErrDivisionByZero
// when o is zero. Division by zero is the only failing binary operation.
func (v Value) Div(o Value) (Value, error) {
	if o.IsZero() {
		return Value{}, ErrDivisionByZero
	}
	return Value{working().Quo(v.ref(), o.ref())}, nil
}

// Percent returns v / 100 rounded to the working precision.
func (v Value) Percent() Value {
	return Value{working().Quo(v.ref(), hundred)}
}

// Neg returns v with its sign flipped.
func (v Value) Neg() Value {
	return Value{new(decimal.Decimal).Neg(v.ref())}
}

// IsZero reports whether v equals 0, regardless of representation.
func (v Value) IsZero() bool { return v.ref().Sign() == 0 }

// IsNegative reports whether v < 0.
func (v Value) IsNegative() bool { return v.ref().Sign() < 0 }

// Cmp compares v and o, returning -1, 0 or +1.
func (v Value) Cmp(o Value) int { return v.ref().Cmp(o.ref()) }

func (v Value) String() string { return Format(v) }

// Format renders v for the display: the shortest exact decimal with trailing
// fractional zeros stripped, "0" for zero. Renderings longer than 24
// characters fall back to scientific notation at the working precision.
// Format never fails.
func Format(v Value) string {
	d := v.ref()
	if d.Sign() == 0 {
		return "0"
	}
	s := d.Text('f', -1)
	if len(s) > maxPlainLen {
		s = working().Set(d).Text('e', -1)
	}
	return s
}

// sqrtIterations fixes the number of Newton-Raphson refinement steps. The
// count is deliberately not convergence-checked: identical inputs must
// produce identical output every call.
const sqrtIterations = 30

// Sqrt returns the square root of v at the working precision. It fails with
// ErrNegativeOperand when v < 0 and returns 0 for 0. The root is computed by
// Newton-Raphson refinement seeded from the float64 square root.
func (v Value) Sqrt() (Value, error) {
	if v.IsNegative() {
		return Value{}, ErrNegativeOperand
	}
	if v.IsZero() {
		return Zero(), nil
	}
	f, _ := v.ref().Float64()
	if math.IsInf(f, 0) {
		return Value{}, ErrOverflow
	}
	return Value{sqrtNewton(v.ref(), f)}, nil
}

func sqrtNewton(x *decimal.Decimal, seed float64) *decimal.Decimal {
	guess := working().SetFloat64(math.Sqrt(seed))
	if guess.Sign() == 0 {
		guess.SetInt64(1)
	}
	for i := 0; i < sqrtIterations; i++ {
		q := working().Quo(x, guess)
		sum := working().Add(guess, q)
		guess = working().Quo(sum, two)
	}
	return guess
}
