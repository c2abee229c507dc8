package sierraemu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
	"github.com/feltvm/sierra-emu/internal/sierraemu/vm"
)

// Trace wraps an engine ProgramTrace for JSON projection.
type Trace struct {
	inner *vm.ProgramTrace
}

// MarshalJSON renders {"states": [{"statementIdx": N, "preStateDump": {...}}]}
// with var_id keys sorted ascending, per the trace JSON projection table.
func (t *Trace) MarshalJSON() ([]byte, error) {
	states := make([]json.RawMessage, len(t.inner.States))
	for i, dump := range t.inner.States {
		raw, err := marshalStateDump(dump)
		if err != nil {
			return nil, fmt.Errorf("sierraemu: marshaling state %d: %w", i, err)
		}
		states[i] = raw
	}
	return json.Marshal(struct {
		States []json.RawMessage `json:"states"`
	}{States: states})
}

func marshalStateDump(dump vm.StateDump) (json.RawMessage, error) {
	keys := dump.PreState.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	// Built by hand rather than via a Go map: encoding/json always
	// re-sorts map keys lexicographically, which would scramble numeric
	// var_id order once ids reach more than one digit.
	var vars bytes.Buffer
	vars.WriteByte('{')
	for i, k := range keys {
		v, ok := dump.PreState.Get(k)
		if !ok {
			continue
		}
		raw, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			vars.WriteByte(',')
		}
		fmt.Fprintf(&vars, "%q:", fmt.Sprintf("%d", k))
		vars.Write(raw)
	}
	vars.WriteByte('}')

	return json.Marshal(struct {
		StatementIdx int             `json:"statementIdx"`
		PreStateDump json.RawMessage `json:"preStateDump"`
	}{
		StatementIdx: int(dump.StatementIdx),
		PreStateDump: vars.Bytes(),
	})
}

// marshalValue projects a runtime Value to JSON per the table in the
// external-interfaces section: Felt/Bytes31 as decimal strings, fixed-width
// integers as JSON numbers, BoundedInt/Enum/Array/FeltDict as small
// objects, and Unit as null.
func marshalValue(v value.Value) (json.RawMessage, error) {
	switch v.Kind {
	case value.KindFelt, value.KindBytes31:
		return json.Marshal(v.Felt.String())

	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		return json.Marshal(v.Int)
	case value.KindU128:
		return json.RawMessage(v.Big.String()), nil
	case value.KindI8, value.KindI16, value.KindI32, value.KindI64:
		return json.Marshal(v.Sig)
	case value.KindI128:
		return json.RawMessage(v.Big.String()), nil

	case value.KindBoundedInt:
		return json.Marshal(struct {
			Range [2]int64        `json:"range"`
			Value json.RawMessage `json:"value"`
		}{Range: [2]int64{v.BoundedRange.Lo, v.BoundedRange.Hi}, Value: json.RawMessage(v.Big.String())})

	case value.KindStruct:
		elems := make([]json.RawMessage, len(v.Fields))
		for i, f := range v.Fields {
			raw, err := marshalValue(f)
			if err != nil {
				return nil, err
			}
			elems[i] = raw
		}
		return json.Marshal(elems)

	case value.KindEnum:
		payload, err := marshalValue(*v.EnumPayload)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			SelfTy  int64           `json:"self_ty"`
			Index   int             `json:"index"`
			Payload json.RawMessage `json:"payload"`
		}{SelfTy: int64(v.EnumType), Index: v.EnumIndex, Payload: payload})

	case value.KindArray:
		data := make([]json.RawMessage, len(v.Array))
		for i, e := range v.Array {
			raw, err := marshalValue(e)
			if err != nil {
				return nil, err
			}
			data[i] = raw
		}
		return json.Marshal(struct {
			Ty   int64             `json:"ty"`
			Data []json.RawMessage `json:"data"`
		}{Ty: int64(v.ArrayElemType), Data: data})

	case value.KindFeltDict:
		entries := make(map[string]json.RawMessage, len(v.Dict.Keys()))
		for _, k := range v.Dict.Keys() {
			dv, _ := v.Dict.Get(k)
			raw, err := marshalValue(dv)
			if err != nil {
				return nil, err
			}
			entries[k.String()] = raw
		}
		return json.Marshal(struct {
			Ty   int64                      `json:"ty"`
			Data map[string]json.RawMessage `json:"data"`
		}{Ty: int64(v.DictValueType), Data: entries})

	case value.KindUnit:
		return json.Marshal(nil)
	}
	return json.Marshal(nil)
}
