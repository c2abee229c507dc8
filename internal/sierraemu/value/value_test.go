package value

import (
	"math/big"
	"testing"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

type fakeRegistry struct {
	types map[ir.TypeID]*ir.TypeDescriptor
}

func (f *fakeRegistry) TypeOf(id ir.TypeID) (*ir.TypeDescriptor, error) {
	td, ok := f.types[id]
	if !ok {
		return nil, errf("no such type %d", id)
	}
	return td, nil
}

func newFakeRegistry(tds ...ir.TypeDescriptor) *fakeRegistry {
	r := &fakeRegistry{types: make(map[ir.TypeID]*ir.TypeDescriptor)}
	for i := range tds {
		t := tds[i]
		r.types[t.ID] = &t
	}
	return r
}

func TestIsOf(t *testing.T) {
	t.Run("felt conforms to felt type", func(t *testing.T) {
		reg := newFakeRegistry(ir.TypeDescriptor{ID: 1, Kind: ir.TypeFelt})
		ok, err := IsOf(reg, NewFelt(felt.FromInt64(1)), 1)
		if err != nil || !ok {
			t.Fatalf("expected conformance, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("u32 does not conform to felt type", func(t *testing.T) {
		reg := newFakeRegistry(ir.TypeDescriptor{ID: 1, Kind: ir.TypeFelt})
		ok, err := IsOf(reg, NewUint(32, 5), 1)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected non-conformance")
		}
	})

	t.Run("nonzero is transparent to inner type", func(t *testing.T) {
		reg := newFakeRegistry(
			ir.TypeDescriptor{ID: 1, Kind: ir.TypeU8},
			ir.TypeDescriptor{ID: 2, Kind: ir.TypeNonZero, Inner: 1},
		)
		ok, err := IsOf(reg, NewUint(8, 3), 2)
		if err != nil || !ok {
			t.Fatalf("expected conformance through NonZero, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("builtin resource types require unit", func(t *testing.T) {
		reg := newFakeRegistry(ir.TypeDescriptor{ID: 1, Kind: ir.TypeRangeCheck})
		ok, err := IsOf(reg, Unit, 1)
		if err != nil || !ok {
			t.Fatalf("expected Unit to conform to RangeCheck, got ok=%v err=%v", ok, err)
		}
		ok, err = IsOf(reg, NewUint(8, 0), 1)
		if err != nil || ok {
			t.Fatal("expected non-Unit to not conform to RangeCheck")
		}
	})

	t.Run("address family requires felt", func(t *testing.T) {
		reg := newFakeRegistry(ir.TypeDescriptor{ID: 1, Kind: ir.TypeContractAddress})
		ok, err := IsOf(reg, NewFelt(felt.FromInt64(42)), 1)
		if err != nil || !ok {
			t.Fatal("expected contract address to conform to felt value")
		}
	})

	t.Run("bounded int requires identical range", func(t *testing.T) {
		reg := newFakeRegistry(ir.TypeDescriptor{ID: 1, Kind: ir.TypeBoundedInt, Range: ir.IntRange{Lo: 0, Hi: 10}})
		v := NewBoundedInt(ir.IntRange{Lo: 0, Hi: 10}, big.NewInt(5))
		ok, err := IsOf(reg, v, 1)
		if err != nil || !ok {
			t.Fatal("expected matching-range bounded int to conform")
		}
		v2 := NewBoundedInt(ir.IntRange{Lo: 0, Hi: 20}, big.NewInt(5))
		ok, err = IsOf(reg, v2, 1)
		if err != nil || ok {
			t.Fatal("expected mismatched-range bounded int to not conform")
		}
	})

	t.Run("struct checks pointwise conformance", func(t *testing.T) {
		reg := newFakeRegistry(
			ir.TypeDescriptor{ID: 1, Kind: ir.TypeU8},
			ir.TypeDescriptor{ID: 2, Kind: ir.TypeFelt},
			ir.TypeDescriptor{ID: 3, Kind: ir.TypeStruct, Members: []ir.TypeID{1, 2}},
		)
		v := NewStruct(3, []Value{NewUint(8, 1), NewFelt(felt.FromInt64(2))})
		ok, err := IsOf(reg, v, 3)
		if err != nil || !ok {
			t.Fatal("expected struct to conform")
		}
	})

	t.Run("enum requires in-range index and conforming payload", func(t *testing.T) {
		reg := newFakeRegistry(
			ir.TypeDescriptor{ID: 1, Kind: ir.TypeU8},
			ir.TypeDescriptor{ID: 2, Kind: ir.TypeFelt},
			ir.TypeDescriptor{ID: 3, Kind: ir.TypeEnum, Variants: []ir.TypeID{1, 2}},
		)
		v := NewEnum(3, 1, NewFelt(felt.FromInt64(9)))
		ok, err := IsOf(reg, v, 3)
		if err != nil || !ok {
			t.Fatal("expected enum to conform")
		}
		bad := NewEnum(3, 1, NewUint(8, 9))
		ok, err = IsOf(reg, bad, 3)
		if err != nil || ok {
			t.Fatal("expected enum with mismatched payload to not conform")
		}
	})
}

func TestFrameStateOrdering(t *testing.T) {
	t.Run("keys preserve insertion order", func(t *testing.T) {
		s := NewFrameState()
		s.Bind(3, NewUint(8, 0))
		s.Bind(1, NewUint(8, 0))
		s.Bind(2, NewUint(8, 0))
		got := s.Keys()
		want := []ir.VarID{3, 1, 2}
		if len(got) != len(want) {
			t.Fatalf("got %v want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v want %v", got, want)
			}
		}
	})

	t.Run("withdraw removes binding and order entry", func(t *testing.T) {
		s := NewFrameState()
		s.Bind(1, NewUint(8, 1))
		s.Bind(2, NewUint(8, 2))
		if _, ok := s.Withdraw(1); !ok {
			t.Fatal("expected withdraw to succeed")
		}
		if s.Len() != 1 {
			t.Fatalf("expected 1 remaining binding, got %d", s.Len())
		}
		if _, ok := s.Get(1); ok {
			t.Fatal("expected binding 1 to be gone")
		}
	})
}

func TestFeltDictOrdering(t *testing.T) {
	t.Run("keys preserve insertion order", func(t *testing.T) {
		d := NewFeltDict(1)
		d.Set(felt.FromInt64(7), NewFelt(felt.FromInt64(70)))
		d.Set(felt.FromInt64(3), NewFelt(felt.FromInt64(30)))
		keys := d.Keys()
		if len(keys) != 2 || !keys[0].Equal(felt.FromInt64(7)) || !keys[1].Equal(felt.FromInt64(3)) {
			t.Fatalf("unexpected key order: %v", keys)
		}
	})
}
