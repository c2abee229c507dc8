package syscall

import "github.com/feltvm/sierra-emu/internal/sierraemu/felt"

// NoopHandler fails every method with an unimplemented-syscall payload.
// Useful as a baseline for programs that are known not to touch the host.
type NoopHandler struct{}

var _ Handler = NoopHandler{}

func (NoopHandler) StorageRead(_ *uint64, _ felt.Element) (felt.Element, Felts) {
	return felt.Element{}, unimplemented("storage_read")
}
func (NoopHandler) StorageWrite(_ *uint64, _, _ felt.Element) Felts {
	return unimplemented("storage_write")
}
func (NoopHandler) EmitEvent(_ *uint64, _ Event) Felts { return unimplemented("emit_event") }
func (NoopHandler) GetBlockHash(_ *uint64, _ uint64) (felt.Element, Felts) {
	return felt.Element{}, unimplemented("get_block_hash")
}
func (NoopHandler) GetExecutionInfo(_ *uint64) (ExecutionInfo, Felts) {
	return ExecutionInfo{}, unimplemented("get_execution_info")
}
func (NoopHandler) GetExecutionInfoV2(_ *uint64) (ExecutionInfo, Felts) {
	return ExecutionInfo{}, unimplemented("get_execution_info_v2")
}
func (NoopHandler) Deploy(_ *uint64, _ felt.Element, _ felt.Element, _ []felt.Element, _ bool) (felt.Element, []felt.Element, Felts) {
	return felt.Element{}, nil, unimplemented("deploy")
}
func (NoopHandler) LibraryCall(_ *uint64, _ felt.Element, _ felt.Element, _ []felt.Element) ([]felt.Element, Felts) {
	return nil, unimplemented("library_call")
}
func (NoopHandler) CallContract(_ *uint64, _ felt.Element, _ felt.Element, _ []felt.Element) ([]felt.Element, Felts) {
	return nil, unimplemented("call_contract")
}
func (NoopHandler) ReplaceClass(_ *uint64, _ felt.Element) Felts {
	return unimplemented("replace_class")
}
func (NoopHandler) SendMessageToL1(_ *uint64, _ felt.Element, _ []felt.Element) Felts {
	return unimplemented("send_message_to_l1")
}
func (NoopHandler) Keccak(_ *uint64, _ []byte) ([2]uint64, Felts) {
	return [2]uint64{}, unimplemented("keccak")
}
func (NoopHandler) Sha256ProcessBlock(_ *uint64, _ [8]uint32, _ [16]uint32) ([8]uint32, Felts) {
	return [8]uint32{}, unimplemented("sha256_process_block")
}
func (NoopHandler) Secp256k1New(_ *uint64, _, _ [4]uint64) (int, bool, Felts) {
	return 0, false, unimplemented("secp256k1_new")
}
func (NoopHandler) Secp256k1Add(_ *uint64, _, _ int) (int, Felts) {
	return 0, unimplemented("secp256k1_add")
}
func (NoopHandler) Secp256k1Mul(_ *uint64, _ int, _ [4]uint64) (int, Felts) {
	return 0, unimplemented("secp256k1_mul")
}
func (NoopHandler) Secp256k1GetPointFromX(_ *uint64, _ [4]uint64, _ bool) (int, bool, Felts) {
	return 0, false, unimplemented("secp256k1_get_point_from_x")
}
func (NoopHandler) Secp256k1GetXY(_ *uint64, _ int) ([4]uint64, [4]uint64, Felts) {
	return [4]uint64{}, [4]uint64{}, unimplemented("secp256k1_get_xy")
}
func (NoopHandler) Secp256r1New(_ *uint64, _, _ [4]uint64) (int, bool, Felts) {
	return 0, false, unimplemented("secp256r1_new")
}
func (NoopHandler) Secp256r1Add(_ *uint64, _, _ int) (int, Felts) {
	return 0, unimplemented("secp256r1_add")
}
func (NoopHandler) Secp256r1Mul(_ *uint64, _ int, _ [4]uint64) (int, Felts) {
	return 0, unimplemented("secp256r1_mul")
}
func (NoopHandler) Secp256r1GetPointFromX(_ *uint64, _ [4]uint64, _ bool) (int, bool, Felts) {
	return 0, false, unimplemented("secp256r1_get_point_from_x")
}
func (NoopHandler) Secp256r1GetXY(_ *uint64, _ int) ([4]uint64, [4]uint64, Felts) {
	return [4]uint64{}, [4]uint64{}, unimplemented("secp256r1_get_xy")
}
