package arith

import (
	"errors"
	"testing"
)

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("abc"); err == nil {
		t.Fatal("expected error parsing non-numeric input")
	}
}

func TestFormatStripsTrailingZeros(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "0.0", want: "0"},
		{in: "1.50", want: "1.5"},
		{in: "-12.300", want: "-12.3"},
		{in: "1234.50", want: "1234.5"},
		{in: "0.0001", want: "0.0001"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Format(MustParse(tc.in))
			if got != tc.want {
				t.Fatalf("Format(%q): expected %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestFormatFallsBackToScientificNotation(t *testing.T) {
	// 33 digits renders longer than 24 characters in plain form.
	v := MustParse("100000000000000000000000000000000")
	if got, want := Format(v), "1e+32"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDivisionRoundsToWorkingPrecision(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{a: "1", b: "3", want: "0.3333333333333333"},
		{a: "2", b: "3", want: "0.6666666666666667"},
		{a: "10", b: "4", want: "2.5"},
	}

	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			got, err := MustParse(tc.a).Div(MustParse(tc.b))
			if err != nil {
				t.Fatalf("dividing: %v", err)
			}
			if s := Format(got); s != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, s)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := MustParse("5").Div(Zero())
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMultiplyThenDivideRoundTrips(t *testing.T) {
	tests := []struct{ a, b string }{
		{a: "1.5", b: "3"},
		{a: "0.1", b: "7"},
		{a: "123.456", b: "0.001"},
		{a: "-2.5", b: "8"},
	}

	for _, tc := range tests {
		t.Run(tc.a+"*"+tc.b, func(t *testing.T) {
			a, b := MustParse(tc.a), MustParse(tc.b)
			got, err := a.Mul(b).Div(b)
			if err != nil {
				t.Fatalf("dividing: %v", err)
			}
			if Format(got) != Format(a) {
				t.Fatalf("expected %q, got %q", Format(a), Format(got))
			}
		})
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "4", want: "2"},
		{in: "9", want: "3"},
		{in: "2", want: "1.414213562373095"},
		{in: "0.25", want: "0.5"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := MustParse(tc.in).Sqrt()
			if err != nil {
				t.Fatalf("sqrt(%s): %v", tc.in, err)
			}
			if s := Format(got); s != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, s)
			}
		})
	}
}

func TestSqrtOfNegative(t *testing.T) {
	_, err := MustParse("-1").Sqrt()
	if !errors.Is(err, ErrNegativeOperand) {
		t.Fatalf("expected ErrNegativeOperand, got %v", err)
	}
}

func TestPercent(t *testing.T) {
	if got := Format(MustParse("10").Percent()); got != "0.1" {
		t.Fatalf("expected %q, got %q", "0.1", got)
	}
	if got := Format(MustParse("250").Percent()); got != "2.5" {
		t.Fatalf("expected %q, got %q", "2.5", got)
	}
}

func TestValueEqualityIsValueBased(t *testing.T) {
	if MustParse("0").Cmp(MustParse("0.0")) != 0 {
		t.Fatal("expected 0 and 0.0 to compare equal")
	}
	if !MustParse("0.000").IsZero() {
		t.Fatal("expected 0.000 to be zero")
	}
	if MustParse("-3").Neg().Cmp(MustParse("3")) != 0 {
		t.Fatal("expected -(-3) to equal 3")
	}
}
