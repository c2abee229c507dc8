// Package syscall defines the host-syscall abstraction boundary: the
// interface every starknet libfunc invokes, and two embedder-facing
// implementations (a deterministic fixture store for tests, and a
// fail-everything stub). Separating pure interpretation from host effects
// this way follows the same seam the engine already draws around its own
// trace recorder: the VM never talks to storage directly, only through this
// interface.
package syscall

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
)

// ExecutionInfo mirrors the block/transaction context a contract call sees.
type ExecutionInfo struct {
	BlockNumber        uint64
	BlockTimestamp     uint64
	SequencerAddress   felt.Element
	Caller             felt.Element
	ContractAddress    felt.Element
	EntryPointSelector felt.Element
}

// Event is one emitted log record.
type Event struct {
	Keys []felt.Element
	Data []felt.Element
}

// Felts is the uniform error payload every syscall failure carries.
type Felts []felt.Element

// Handler is the embedder-supplied implementation of host effects. Every
// method takes the remaining-gas counter by pointer (syscalls may consume
// gas on top of the libfunc's own cost) and returns a typed result or a
// Felts error payload, surfaced verbatim on the calling libfunc's error
// branch.
type Handler interface {
	StorageRead(gas *uint64, address felt.Element) (felt.Element, Felts)
	StorageWrite(gas *uint64, address, value felt.Element) Felts
	EmitEvent(gas *uint64, ev Event) Felts
	GetBlockHash(gas *uint64, blockNumber uint64) (felt.Element, Felts)
	GetExecutionInfo(gas *uint64) (ExecutionInfo, Felts)
	GetExecutionInfoV2(gas *uint64) (ExecutionInfo, Felts)
	Deploy(gas *uint64, classHash felt.Element, salt felt.Element, calldata []felt.Element, deployFromZero bool) (address felt.Element, result []felt.Element, err Felts)
	LibraryCall(gas *uint64, classHash felt.Element, selector felt.Element, calldata []felt.Element) ([]felt.Element, Felts)
	CallContract(gas *uint64, address felt.Element, selector felt.Element, calldata []felt.Element) ([]felt.Element, Felts)
	ReplaceClass(gas *uint64, classHash felt.Element) Felts
	SendMessageToL1(gas *uint64, toAddress felt.Element, payload []felt.Element) Felts
	Keccak(gas *uint64, input []byte) ([2]uint64, Felts)
	Sha256ProcessBlock(gas *uint64, state [8]uint32, block [16]uint32) ([8]uint32, Felts)
	Secp256k1New(gas *uint64, x, y [4]uint64) (handle int, ok bool, err Felts)
	Secp256k1Add(gas *uint64, p0, p1 int) (int, Felts)
	Secp256k1Mul(gas *uint64, p int, scalar [4]uint64) (int, Felts)
	Secp256k1GetPointFromX(gas *uint64, x [4]uint64, yParity bool) (handle int, ok bool, err Felts)
	Secp256k1GetXY(gas *uint64, p int) (x, y [4]uint64, err Felts)
	Secp256r1New(gas *uint64, x, y [4]uint64) (handle int, ok bool, err Felts)
	Secp256r1Add(gas *uint64, p0, p1 int) (int, Felts)
	Secp256r1Mul(gas *uint64, p int, scalar [4]uint64) (int, Felts)
	Secp256r1GetPointFromX(gas *uint64, x [4]uint64, yParity bool) (handle int, ok bool, err Felts)
	Secp256r1GetXY(gas *uint64, p int) (x, y [4]uint64, err Felts)
}

func unimplemented(name string) Felts {
	return Felts{felt.FromBytesBE([]byte(fmt.Sprintf("unimplemented syscall: %s", name)))}
}
