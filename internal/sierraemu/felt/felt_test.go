package felt

import (
	"math/big"
	"testing"
)

func TestArithmetic(t *testing.T) {
	t.Run("add wraps modulo p", func(t *testing.T) {
		a := FromBigInt(new(big.Int).Sub(Modulus, big.NewInt(1)))
		got := a.Add(FromInt64(2))
		if !got.Equal(FromInt64(1)) {
			t.Fatalf("got %s, want 1", got)
		}
	})

	t.Run("sub of smaller from larger wraps around", func(t *testing.T) {
		got := Zero.Sub(One)
		want := FromBigInt(new(big.Int).Sub(Modulus, big.NewInt(1)))
		if !got.Equal(want) {
			t.Fatalf("got %s, want %s", got, want)
		}
	})

	t.Run("mul and inv round-trip", func(t *testing.T) {
		a := FromInt64(12345)
		inv, err := a.Inv()
		if err != nil {
			t.Fatal(err)
		}
		if !a.Mul(inv).IsOne() {
			t.Fatal("a * a^-1 != 1")
		}
	})

	t.Run("inverse of zero errors", func(t *testing.T) {
		if _, err := Zero.Inv(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("div by zero errors", func(t *testing.T) {
		if _, err := One.Div(Zero); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("exp matches repeated mul", func(t *testing.T) {
		a := FromInt64(7)
		got := a.Exp(big.NewInt(4))
		want := a.Mul(a).Mul(a).Mul(a)
		if !got.Equal(want) {
			t.Fatalf("got %s, want %s", got, want)
		}
	})

	t.Run("bytes32 round trip", func(t *testing.T) {
		a := FromInt64(424242)
		b := a.Bytes32()
		got := FromBytesBE(b[:])
		if !got.Equal(a) {
			t.Fatalf("got %s, want %s", got, a)
		}
	})

	t.Run("fits in bits", func(t *testing.T) {
		a := FromInt64(255)
		if !a.FitsInBits(8) {
			t.Fatal("255 should fit in 8 bits")
		}
		if a.FitsInBits(7) {
			t.Fatal("255 should not fit in 7 bits")
		}
	})
}
