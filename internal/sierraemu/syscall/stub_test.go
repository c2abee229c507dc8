package syscall

import (
	"testing"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
)

func TestStubHandlerStorage(t *testing.T) {
	t.Run("round trips through write then read", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64 = 1000
		addr := felt.FromInt64(42)
		val := felt.FromInt64(7)
		if errs := h.StorageWrite(&gas, addr, val); errs != nil {
			t.Fatal(errs)
		}
		got, errs := h.StorageRead(&gas, addr)
		if errs != nil {
			t.Fatal(errs)
		}
		if !got.Equal(val) {
			t.Fatalf("got %s, want %s", got, val)
		}
	})

	t.Run("unwritten slot reads zero", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64
		got, errs := h.StorageRead(&gas, felt.FromInt64(1))
		if errs != nil {
			t.Fatal(errs)
		}
		if !got.IsZero() {
			t.Fatal("expected zero default")
		}
	})
}

func TestStubHandlerEvents(t *testing.T) {
	t.Run("logs events in emission order", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64
		h.EmitEvent(&gas, Event{Keys: []felt.Element{felt.FromInt64(1)}})
		h.EmitEvent(&gas, Event{Keys: []felt.Element{felt.FromInt64(2)}})
		events := h.Events()
		if len(events) != 2 {
			t.Fatalf("got %d events, want 2", len(events))
		}
		if !events[0].Keys[0].Equal(felt.FromInt64(1)) {
			t.Fatal("expected first event to be emitted first")
		}
	})
}

func TestNoopHandlerFailsEverything(t *testing.T) {
	t.Run("storage read is unimplemented", func(t *testing.T) {
		h := NoopHandler{}
		var gas uint64
		_, errs := h.StorageRead(&gas, felt.FromInt64(1))
		if errs == nil {
			t.Fatal("expected NoopHandler to fail")
		}
	})
}

func TestSecp256k1RoundTrip(t *testing.T) {
	t.Run("new then get_xy returns the same coordinates", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64
		params := btcecS256Params()
		gx, gy := bigIntToLimbs(params.Gx), bigIntToLimbs(params.Gy)
		handle, ok, errs := h.Secp256k1New(&gas, gx, gy)
		if errs != nil {
			t.Fatal(errs)
		}
		if !ok {
			t.Fatal("expected generator point to be on curve")
		}
		x, y, errs := h.Secp256k1GetXY(&gas, handle)
		if errs != nil {
			t.Fatal(errs)
		}
		if x != gx || y != gy {
			t.Fatal("expected get_xy to return the coordinates passed to new")
		}
	})
}

func TestKeccak(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64
		a, errs := h.Keccak(&gas, []byte("hello"))
		if errs != nil {
			t.Fatal(errs)
		}
		b, errs := h.Keccak(&gas, []byte("hello"))
		if errs != nil {
			t.Fatal(errs)
		}
		if a != b {
			t.Fatal("keccak should be deterministic")
		}
	})
}

func TestSha256ProcessBlock(t *testing.T) {
	t.Run("deterministic for fixed state and block", func(t *testing.T) {
		h := NewStubHandler(ExecutionInfo{})
		var gas uint64
		state := [8]uint32{0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19}
		var block [16]uint32
		a, errs := h.Sha256ProcessBlock(&gas, state, block)
		if errs != nil {
			t.Fatal(errs)
		}
		b, _ := h.Sha256ProcessBlock(&gas, state, block)
		if a != b {
			t.Fatal("sha256 compression should be deterministic")
		}
	})
}
