// Package ir defines the typed, SSA-like program representation the engine
// interprets: statements, functions, type and libfunc descriptors, and the
// registry that resolves identifiers to descriptors. Parsing this shape from
// a textual or serialized form is explicitly out of scope (see the package
// doc for pkg/sierraemu) — this package only holds the already-validated
// object graph.
package ir

// TypeID and LibfuncID are stable identifiers resolved through a Registry.
// FunctionID identifies a declared function. VarID names a binding within a
// frame's environment. StatementIndex is a program counter.
type (
	TypeID         int64
	LibfuncID      int64
	FunctionID     int64
	VarID          int64
	StatementIndex int
)

// TypeKind discriminates the structural shape of a TypeDescriptor.
type TypeKind int

const (
	TypeFelt TypeKind = iota
	TypeBytes31
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeBoundedInt
	TypeStruct
	TypeEnum
	TypeArray
	TypeFeltDict
	TypeFeltDictEntry
	TypeNonZero
	TypeSnapshot
	TypeBox
	TypeNullable
	TypeEcPoint
	TypeEcState
	TypeU256
	TypeCircuit
	TypeCircuitModulus
	TypeCircuitOutputs
	TypeU96Guarantee
	// Builtin resource placeholders, all represented at runtime as Unit.
	TypeRangeCheck
	TypeSegmentArena
	TypeBitwise
	TypePedersen
	TypePoseidon
	TypeEcOp
	TypeAddMod
	TypeMulMod
	TypeBuiltinCosts
	TypeSystem
	TypeGasBuiltin
	TypeUnit
	// StarkNet address-family types, all conformant to Felt.
	TypeClassHash
	TypeContractAddress
	TypeStorageBaseAddress
	TypeStorageAddress
)

// IntRange is a half-open integer range [Lo, Hi).
type IntRange struct {
	Lo, Hi int64
}

// TypeDescriptor describes one concrete type referenced by the program.
type TypeDescriptor struct {
	ID   TypeID   `json:"id"`
	Kind TypeKind `json:"kind"`

	// Inner is the wrapped type for NonZero/Snapshot/Box/Nullable.
	Inner TypeID `json:"inner,omitempty"`
	// Range is populated for TypeBoundedInt.
	Range IntRange `json:"range,omitempty"`
	// Members is populated for TypeStruct, in declaration order.
	Members []TypeID `json:"members,omitempty"`
	// Variants is populated for TypeEnum, in declaration order.
	Variants []TypeID `json:"variants,omitempty"`
	// Elem is populated for TypeArray / TypeFeltDict / TypeFeltDictEntry.
	Elem TypeID `json:"elem,omitempty"`
	// Name is a human-readable label, used only for diagnostics.
	Name string `json:"name,omitempty"`
}

// LibfuncDescriptor names a primitive operation: a family discriminant plus
// a sub-selector (e.g. family "u32", selector "overflowing_add") and the
// generic type arguments it closes over.
type LibfuncDescriptor struct {
	ID       LibfuncID `json:"id"`
	Family   string    `json:"family"`
	Selector string    `json:"selector"`
	TypeArgs []TypeID  `json:"type_args,omitempty"`
	// Data carries operation-specific static parameters, e.g. the literal
	// for a const libfunc or the boundary for bounded_int.constrain.
	Data any    `json:"data,omitempty"`
	Name string `json:"name,omitempty"`
}

// Param is one function parameter: the variable it binds and its type.
type Param struct {
	Var  VarID  `json:"var_id"`
	Type TypeID `json:"type_id"`
}

// Function is a declared, callable entry in the program.
type Function struct {
	ID          FunctionID     `json:"id"`
	Name        string         `json:"name"`
	Params      []Param        `json:"params"`
	ReturnTypes []TypeID       `json:"return_types"`
	EntryPC     StatementIndex `json:"entry_pc"`
}

// Branch is one arm of an Invocation: where control goes and which
// variables receive the results emitted on that arm.
type Branch struct {
	// Target, if non-negative, is an absolute StatementIndex (a jump).
	// A negative Target means fallthrough (pc + 1).
	Target     StatementIndex `json:"target"`
	ResultVars []VarID        `json:"result_var_ids"`
}

// Fallthrough is the sentinel Branch.Target meaning "pc + 1".
const Fallthrough StatementIndex = -1

// Invocation is a libfunc call statement.
type Invocation struct {
	Libfunc  LibfuncID `json:"libfunc_id"`
	Args     []VarID   `json:"arg_var_ids"`
	Branches []Branch  `json:"branches"`
}

// Return is a function-return statement.
type Return struct {
	Vars []VarID `json:"var_ids"`
}

// Statement is either an Invocation or a Return. Exactly one of the two
// fields is non-nil.
type Statement struct {
	Invocation *Invocation `json:"invocation,omitempty"`
	Return     *Return     `json:"return,omitempty"`
}

// Program is the full, already-validated object graph the engine consumes.
type Program struct {
	Types      []TypeDescriptor    `json:"types"`
	Libfuncs   []LibfuncDescriptor `json:"libfuncs"`
	Functions  []Function          `json:"functions"`
	Statements []Statement         `json:"statements"`
}

// Next resolves a Branch.Target against the statement index it was taken
// from, implementing the Fallthrough convention.
func (b Branch) Next(from StatementIndex) StatementIndex {
	if b.Target < 0 {
		return from + 1
	}
	return b.Target
}
