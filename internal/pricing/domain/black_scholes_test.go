package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustPrice(t *testing.T, input PricingInput) float64 {
	t.Helper()
	p, err := Price(input)
	if err != nil {
		t.Fatalf("Price(%+v) returned error: %v", input, err)
	}
	return p
}

func baseInput(typ OptionType) PricingInput {
	return PricingInput{
		Spot:         100.0,
		Strike:       100.0,
		Maturity:     1.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		Type:         typ,
	}
}

func TestPriceReferenceCase(t *testing.T) {
	// 经典教科书参数：S=100, K=100, T=1, r=0.05, σ=0.2
	call := mustPrice(t, baseInput(OptionTypeCall))
	put := mustPrice(t, baseInput(OptionTypePut))

	if !almostEqual(call, 10.450583572185565, 1e-9) {
		t.Fatalf("call price mismatch: got=%v", call)
	}
	if !almostEqual(put, 5.573526022256971, 1e-9) {
		t.Fatalf("put price mismatch: got=%v", put)
	}
}

func TestPricePutCallParity(t *testing.T) {
	// Put-Call Parity: C - P = S - K*e^{-rT}
	cases := []PricingInput{
		{Spot: 100, Strike: 100, Maturity: 1, RiskFreeRate: 0.05, Volatility: 0.2},
		{Spot: 120, Strike: 95, Maturity: 0.5, RiskFreeRate: 0.03, Volatility: 0.45},
		{Spot: 80, Strike: 110, Maturity: 2.5, RiskFreeRate: 0.0, Volatility: 0.1},
		{Spot: 55.5, Strike: 60, Maturity: 0.08, RiskFreeRate: 0.12, Volatility: 0.9},
	}

	for _, in := range cases {
		in.Type = OptionTypeCall
		call := mustPrice(t, in)
		in.Type = OptionTypePut
		put := mustPrice(t, in)

		left := call - put
		right := in.Spot - in.Strike*math.Exp(-in.RiskFreeRate*in.Maturity)

		if !almostEqual(left, right, 1e-9*math.Max(1, math.Abs(right))) {
			t.Fatalf("parity mismatch for %+v: left=%v right=%v", in, left, right)
		}
	}
}

func TestPriceDegenerateCases(t *testing.T) {
	// T=0 或 σ=0 时价格恒为 0.0
	for _, typ := range []OptionType{OptionTypeCall, OptionTypePut} {
		in := baseInput(typ)
		in.Maturity = 0
		if got := mustPrice(t, in); got != 0.0 {
			t.Fatalf("expected 0.0 for T=0 %s, got %v", typ, got)
		}

		in = baseInput(typ)
		in.Volatility = 0
		if got := mustPrice(t, in); got != 0.0 {
			t.Fatalf("expected 0.0 for sigma=0 %s, got %v", typ, got)
		}
	}
}

func TestPriceNonNegative(t *testing.T) {
	spots := []float64{10, 50, 90, 100, 110, 200}
	vols := []float64{0.05, 0.2, 0.6, 1.0}

	for _, s := range spots {
		for _, v := range vols {
			in := PricingInput{Spot: s, Strike: 100, Maturity: 1, RiskFreeRate: 0.05, Volatility: v, Type: OptionTypeCall}
			if call := mustPrice(t, in); call < 0 {
				t.Fatalf("negative call price at S=%v sigma=%v: %v", s, v, call)
			}
			in.Type = OptionTypePut
			if put := mustPrice(t, in); put < 0 {
				t.Fatalf("negative put price at S=%v sigma=%v: %v", s, v, put)
			}
		}
	}
}

func TestPriceMonotonicInSpot(t *testing.T) {
	// 固定 K/T/r/σ，call 随 S 非递减，put 随 S 非递增
	var prevCall, prevPut float64
	for i, s := range []float64{60, 70, 80, 90, 100, 110, 120, 130, 140} {
		in := PricingInput{Spot: s, Strike: 100, Maturity: 1, RiskFreeRate: 0.05, Volatility: 0.2, Type: OptionTypeCall}
		call := mustPrice(t, in)
		in.Type = OptionTypePut
		put := mustPrice(t, in)

		if i > 0 {
			if call < prevCall {
				t.Fatalf("call price decreased in S at S=%v: %v < %v", s, call, prevCall)
			}
			if put > prevPut {
				t.Fatalf("put price increased in S at S=%v: %v > %v", s, put, prevPut)
			}
		}
		prevCall, prevPut = call, put
	}
}

func TestPriceInvalidOptionType(t *testing.T) {
	in := baseInput("invalid")
	_, err := Price(in)
	if err == nil {
		t.Fatal("expected error for invalid option type")
	}
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType, got %v", err)
	}
	if !strings.Contains(err.Error(), `"invalid"`) {
		t.Fatalf("error should name the offending value, got %q", err.Error())
	}
}
