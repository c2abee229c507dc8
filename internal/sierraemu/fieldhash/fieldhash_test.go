package fieldhash

import (
	"testing"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
)

func TestPoseidon(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := felt.FromInt64(1)
		b := felt.FromInt64(2)
		h1 := Poseidon(a, b)
		h2 := Poseidon(a, b)
		if !h1.Equal(h2) {
			t.Fatal("poseidon is not deterministic")
		}
	})

	t.Run("order sensitive", func(t *testing.T) {
		h1 := Poseidon(felt.FromInt64(1), felt.FromInt64(2))
		h2 := Poseidon(felt.FromInt64(2), felt.FromInt64(1))
		if h1.Equal(h2) {
			t.Fatal("poseidon should be sensitive to input order")
		}
	})

	t.Run("empty input is defined", func(t *testing.T) {
		h := Poseidon()
		if !h.Equal(Poseidon()) {
			t.Fatal("empty poseidon call should be deterministic")
		}
	})
}

func TestPedersen(t *testing.T) {
	t.Run("distinct from poseidon of same pair", func(t *testing.T) {
		a, b := felt.FromInt64(3), felt.FromInt64(4)
		if Pedersen(a, b).Equal(Poseidon(a, b)) {
			t.Fatal("pedersen should use a distinct domain tag from poseidon")
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, b := felt.FromInt64(3), felt.FromInt64(4)
		if !Pedersen(a, b).Equal(Pedersen(a, b)) {
			t.Fatal("pedersen is not deterministic")
		}
	})
}
