package syscall

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
)

// StubHandler is a deterministic, in-memory fixture store: storage is a
// plain map, events are appended to a log the test can inspect afterward,
// and the execution-info fields are embedder-supplied fixtures rather than
// a live chain view.
type StubHandler struct {
	Info ExecutionInfo

	storage map[string]felt.Element
	events  []Event

	points struct {
		k1next  int
		k1table map[int]secp256k1Point
		r1next  int
		r1table map[int]secp256r1Point
	}
}

var _ Handler = (*StubHandler)(nil)

// NewStubHandler returns a ready-to-use fixture handler seeded with info.
func NewStubHandler(info ExecutionInfo) *StubHandler {
	h := &StubHandler{Info: info, storage: make(map[string]felt.Element)}
	h.points.k1table = make(map[int]secp256k1Point)
	h.points.r1table = make(map[int]secp256r1Point)
	return h
}

// Events returns the handler's event log in emission order.
func (h *StubHandler) Events() []Event {
	return append([]Event(nil), h.events...)
}

func (h *StubHandler) StorageRead(_ *uint64, address felt.Element) (felt.Element, Felts) {
	v, ok := h.storage[address.String()]
	if !ok {
		return felt.Zero, nil
	}
	return v, nil
}

func (h *StubHandler) StorageWrite(_ *uint64, address, value felt.Element) Felts {
	h.storage[address.String()] = value
	return nil
}

func (h *StubHandler) EmitEvent(_ *uint64, ev Event) Felts {
	h.events = append(h.events, ev)
	return nil
}

func (h *StubHandler) GetBlockHash(_ *uint64, blockNumber uint64) (felt.Element, Felts) {
	return felt.FromUint64(blockNumber), nil
}

func (h *StubHandler) GetExecutionInfo(_ *uint64) (ExecutionInfo, Felts) {
	return h.Info, nil
}

func (h *StubHandler) GetExecutionInfoV2(_ *uint64) (ExecutionInfo, Felts) {
	return h.Info, nil
}

func (h *StubHandler) Deploy(_ *uint64, classHash, salt felt.Element, calldata []felt.Element, _ bool) (felt.Element, []felt.Element, Felts) {
	addr := felt.FromBigInt(classHash.Big())
	_ = salt
	return addr, calldata, nil
}

func (h *StubHandler) LibraryCall(_ *uint64, _ felt.Element, _ felt.Element, calldata []felt.Element) ([]felt.Element, Felts) {
	return calldata, nil
}

func (h *StubHandler) CallContract(_ *uint64, _ felt.Element, _ felt.Element, calldata []felt.Element) ([]felt.Element, Felts) {
	return calldata, nil
}

func (h *StubHandler) ReplaceClass(_ *uint64, _ felt.Element) Felts {
	return nil
}

func (h *StubHandler) SendMessageToL1(_ *uint64, _ felt.Element, _ []felt.Element) Felts {
	return nil
}

func (h *StubHandler) Keccak(_ *uint64, input []byte) ([2]uint64, Felts) {
	digest := keccak256(input)
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(digest[31-i]) << (8 * i)
	}
	for i := 0; i < 8; i++ {
		hi |= uint64(digest[23-i]) << (8 * i)
	}
	return [2]uint64{lo, hi}, nil
}

func (h *StubHandler) Sha256ProcessBlock(_ *uint64, state [8]uint32, block [16]uint32) ([8]uint32, Felts) {
	return sha256Compress(state, block), nil
}

func (h *StubHandler) Secp256k1New(_ *uint64, x, y [4]uint64) (int, bool, Felts) {
	p, ok := secp256k1NewPoint(x, y)
	if !ok {
		return 0, false, nil
	}
	h.points.k1next++
	h.points.k1table[h.points.k1next] = p
	return h.points.k1next, true, nil
}

func (h *StubHandler) Secp256k1Add(_ *uint64, p0, p1 int) (int, Felts) {
	a, ok := h.points.k1table[p0]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256k1 handle"))}
	}
	b, ok := h.points.k1table[p1]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256k1 handle"))}
	}
	h.points.k1next++
	h.points.k1table[h.points.k1next] = secp256k1AddPoints(a, b)
	return h.points.k1next, nil
}

func (h *StubHandler) Secp256k1Mul(_ *uint64, p int, scalar [4]uint64) (int, Felts) {
	a, ok := h.points.k1table[p]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256k1 handle"))}
	}
	h.points.k1next++
	h.points.k1table[h.points.k1next] = secp256k1MulPoint(a, scalar)
	return h.points.k1next, nil
}

func (h *StubHandler) Secp256k1GetPointFromX(_ *uint64, x [4]uint64, yParity bool) (int, bool, Felts) {
	p, ok := secp256k1PointFromX(x, yParity)
	if !ok {
		return 0, false, nil
	}
	h.points.k1next++
	h.points.k1table[h.points.k1next] = p
	return h.points.k1next, true, nil
}

func (h *StubHandler) Secp256k1GetXY(_ *uint64, p int) ([4]uint64, [4]uint64, Felts) {
	a, ok := h.points.k1table[p]
	if !ok {
		return [4]uint64{}, [4]uint64{}, Felts{felt.FromBytesBE([]byte("invalid secp256k1 handle"))}
	}
	return bigIntToLimbs(a.x), bigIntToLimbs(a.y), nil
}

func (h *StubHandler) Secp256r1New(_ *uint64, x, y [4]uint64) (int, bool, Felts) {
	p, ok := secp256r1NewPoint(x, y)
	if !ok {
		return 0, false, nil
	}
	h.points.r1next++
	h.points.r1table[h.points.r1next] = p
	return h.points.r1next, true, nil
}

func (h *StubHandler) Secp256r1Add(_ *uint64, p0, p1 int) (int, Felts) {
	a, ok := h.points.r1table[p0]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256r1 handle"))}
	}
	b, ok := h.points.r1table[p1]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256r1 handle"))}
	}
	h.points.r1next++
	h.points.r1table[h.points.r1next] = secp256r1AddPoints(a, b)
	return h.points.r1next, nil
}

func (h *StubHandler) Secp256r1Mul(_ *uint64, p int, scalar [4]uint64) (int, Felts) {
	a, ok := h.points.r1table[p]
	if !ok {
		return 0, Felts{felt.FromBytesBE([]byte("invalid secp256r1 handle"))}
	}
	h.points.r1next++
	h.points.r1table[h.points.r1next] = secp256r1MulPoint(a, scalar)
	return h.points.r1next, nil
}

func (h *StubHandler) Secp256r1GetPointFromX(_ *uint64, x [4]uint64, yParity bool) (int, bool, Felts) {
	p, ok := secp256r1PointFromX(x, yParity)
	if !ok {
		return 0, false, nil
	}
	h.points.r1next++
	h.points.r1table[h.points.r1next] = p
	return h.points.r1next, true, nil
}

func (h *StubHandler) Secp256r1GetXY(_ *uint64, p int) ([4]uint64, [4]uint64, Felts) {
	a, ok := h.points.r1table[p]
	if !ok {
		return [4]uint64{}, [4]uint64{}, Felts{felt.FromBytesBE([]byte("invalid secp256r1 handle"))}
	}
	return bigIntToLimbs(a.x), bigIntToLimbs(a.y), nil
}
