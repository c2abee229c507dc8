package circuit

import (
	"math/big"
	"testing"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestModulus(t *testing.T) {
	t.Run("rejects zero", func(t *testing.T) {
		if _, err := Modulus([4]*big.Int{bi(0), bi(0), bi(0), bi(0)}); err == nil {
			t.Fatal("expected error for zero modulus")
		}
	})

	t.Run("rejects one", func(t *testing.T) {
		if _, err := Modulus([4]*big.Int{bi(1), bi(0), bi(0), bi(0)}); err == nil {
			t.Fatal("expected error for modulus of one")
		}
	})

	t.Run("packs little-endian limbs", func(t *testing.T) {
		m, err := Modulus([4]*big.Int{bi(5), bi(0), bi(0), bi(0)})
		if err != nil {
			t.Fatal(err)
		}
		if m.Cmp(bi(5)) != 0 {
			t.Fatalf("got %s, want 5", m)
		}
	})
}

func TestInputBuffer(t *testing.T) {
	t.Run("reports full only at capacity", func(t *testing.T) {
		b := NewInputBuffer(2)
		full, err := b.AddInput([4]*big.Int{bi(1), bi(0), bi(0), bi(0)})
		if err != nil || full {
			t.Fatalf("expected not full yet, got full=%v err=%v", full, err)
		}
		full, err = b.AddInput([4]*big.Int{bi(2), bi(0), bi(0), bi(0)})
		if err != nil || !full {
			t.Fatalf("expected full, got full=%v err=%v", full, err)
		}
	})

	t.Run("rejects overflow past capacity", func(t *testing.T) {
		b := NewInputBuffer(1)
		if _, err := b.AddInput([4]*big.Int{bi(1), bi(0), bi(0), bi(0)}); err != nil {
			t.Fatal(err)
		}
		if _, err := b.AddInput([4]*big.Int{bi(1), bi(0), bi(0), bi(0)}); err == nil {
			t.Fatal("expected overflow error")
		}
	})
}

func TestEvalAddition(t *testing.T) {
	prime := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

	t.Run("sum below modulus", func(t *testing.T) {
		a, b := bi(5), bi(3)
		desc := Descriptor{AddOffsets: []Gate{{Lhs: 0, Rhs: 1, Output: 2}}}
		values, ok, err := Eval(desc, prime, []*big.Int{a, b})
		if err != nil || !ok {
			t.Fatalf("unexpected err=%v ok=%v", err, ok)
		}
		if values[2].Cmp(bi(8)) != 0 {
			t.Fatalf("got %s, want 8", values[2])
		}
	})

	t.Run("sum wraps modulus", func(t *testing.T) {
		m := bi(7)
		a, b := bi(5), bi(4)
		desc := Descriptor{AddOffsets: []Gate{{Lhs: 0, Rhs: 1, Output: 2}}}
		values, ok, err := Eval(desc, m, []*big.Int{a, b})
		if err != nil || !ok {
			t.Fatalf("unexpected err=%v ok=%v", err, ok)
		}
		if values[2].Cmp(bi(2)) != 0 {
			t.Fatalf("got %s, want 2 (5+4 mod 7)", values[2])
		}
	})
}

func TestEvalDivideByZero(t *testing.T) {
	t.Run("inverse of zero fails and zeroes output", func(t *testing.T) {
		m := bi(11)
		desc := Descriptor{MulOffsets: []Gate{{Lhs: 1, Rhs: 0, Output: 2}}}
		values, ok, err := Eval(desc, m, []*big.Int{bi(0)})
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected inverse-of-zero to fail")
		}
		if values[1].Sign() != 0 {
			t.Fatalf("expected lhs slot to be zeroed, got %s", values[1])
		}
	})
}

func TestEvalSubtractionPattern(t *testing.T) {
	t.Run("solves lhs from rhs and output", func(t *testing.T) {
		m := bi(97)
		// Encodes x = y - z as the add gate y = x + z: rhs (z) and output
		// (y) are known inputs, lhs (x) is solved by back-substitution.
		z, y := bi(3), bi(10)
		desc := Descriptor{AddOffsets: []Gate{{Lhs: 2, Rhs: 0, Output: 1}}}
		values, ok, err := Eval(desc, m, []*big.Int{z, y})
		if err != nil || !ok {
			t.Fatalf("unexpected err=%v ok=%v", err, ok)
		}
		if values[2].Cmp(bi(7)) != 0 {
			t.Fatalf("got %s, want 7 (10-3)", values[2])
		}
	})
}
