package value

import (
	"math/big"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

// FrameState is the ordered VarID -> Value mapping a Frame carries: a map
// plus a slice of VarIDs in insertion order, so that Keys and iteration are
// deterministic. The JSON trace does not use this order; it sorts var ids
// ascending.
type FrameState struct {
	order []ir.VarID
	data  map[ir.VarID]Value
}

// NewFrameState returns an empty, ready-to-use FrameState.
func NewFrameState() *FrameState {
	return &FrameState{data: make(map[ir.VarID]Value)}
}

// Bind inserts or overwrites the binding for id, appending it to the
// insertion order only the first time it is seen.
func (s *FrameState) Bind(id ir.VarID, v Value) {
	if _, exists := s.data[id]; !exists {
		s.order = append(s.order, id)
	}
	s.data[id] = v
}

// Withdraw removes and returns the binding for id.
func (s *FrameState) Withdraw(id ir.VarID) (Value, bool) {
	v, ok := s.data[id]
	if !ok {
		return Value{}, false
	}
	delete(s.data, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return v, true
}

// Get returns the binding for id without removing it.
func (s *FrameState) Get(id ir.VarID) (Value, bool) {
	v, ok := s.data[id]
	return v, ok
}

// Len reports the number of live bindings.
func (s *FrameState) Len() int {
	return len(s.order)
}

// Keys returns the live variable ids in insertion order.
func (s *FrameState) Keys() []ir.VarID {
	return append([]ir.VarID(nil), s.order...)
}

// Snapshot returns a copy suitable for a StateDump: same key order, with
// each Value's mutable payloads (dict pointers, big.Int magnitudes)
// deep-copied so a later mutation through the live frame (e.g.
// felt252_dict.finalize writing through a *FeltDict) can never reach back
// into an already-captured trace entry.
func (s *FrameState) Snapshot() *FrameState {
	c := &FrameState{
		order: append([]ir.VarID(nil), s.order...),
		data:  make(map[ir.VarID]Value, len(s.data)),
	}
	for k, v := range s.data {
		c.data[k] = snapshotValue(v)
	}
	return c
}

// snapshotValue copies the mutable payloads of v that could otherwise be
// shared (and later mutated) across snapshots: Big/Lo/Hi magnitudes and
// dict pointers. Everything else in Value is either immutable (Felt,
// scalars) or, for nested Fields/Array/EnumPayload, itself built from
// already-bound (and thus already-snapshotted) Values.
func snapshotValue(v Value) Value {
	if v.Big != nil {
		v.Big = new(big.Int).Set(v.Big)
	}
	if v.Lo != nil {
		v.Lo = new(big.Int).Set(v.Lo)
	}
	if v.Hi != nil {
		v.Hi = new(big.Int).Set(v.Hi)
	}
	if v.Dict != nil {
		v.Dict = v.Dict.Clone()
	}
	if v.EntryDict != nil {
		v.EntryDict = v.EntryDict.Clone()
	}
	return v
}
