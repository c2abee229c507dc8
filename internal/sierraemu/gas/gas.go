// Package gas implements the two static analyses the engine consults at
// withdraw_gas time: a linear-time ap-change pass and a linear-time gas-cost
// pass, each producing a precomputed table indexed by (pc, token) so that
// withdraw_gas stays O(token count) per step. Pre-solving once rather than
// re-deriving costs during execution follows the same precomputed-table
// discipline this module's dispatch/table machinery always used, just
// applied to a Program's statement graph instead of a STARK trace.
package gas

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
)

// TokenType is one of the seven resource classes a libfunc may cost.
type TokenType int

const (
	TokenConst TokenType = iota
	TokenPedersen
	TokenBitwise
	TokenEcOp
	TokenPoseidon
	TokenAddMod
	TokenMulMod
	numTokenTypes
)

var tokenNames = [numTokenTypes]string{"const", "pedersen", "bitwise", "ec_op", "poseidon", "add_mod", "mul_mod"}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "unknown"
	}
	return tokenNames[t]
}

// StatementCost is a per-token cost table for a single statement.
type StatementCost [numTokenTypes]int64

// Sum adds all token costs together (withdraw_gas sums across every token
// type the current platform exposes).
func (c StatementCost) Sum() int64 {
	var total int64
	for _, v := range c {
		total += v
	}
	return total
}

// Metadata is the precomputed gas/ap-change table for one Program.
type Metadata struct {
	// apChange[pc] is the allocation-pointer delta assigned to statement pc.
	apChange map[ir.StatementIndex]int64
	// functionApChange[fid] is the AP delta assigned to a whole function.
	functionApChange map[ir.FunctionID]int64

	// variableValues[pc] is the per-token cost of statement pc.
	variableValues map[ir.StatementIndex]StatementCost
	// functionCosts[fid] is the aggregate per-token cost of calling fid.
	functionCosts map[ir.FunctionID]StatementCost

	// costOf is supplied by the embedder (or defaulted) to price a
	// specific libfunc invocation; see Config.
	costOf func(reg *ir.Registry, libfunc ir.LibfuncID) StatementCost
}

// Config controls how Compute prices individual statements. CostOf may be
// nil, in which case every invocation is priced at one token: a pedersen,
// bitwise, ec_op or poseidon token for those libfunc families, an add_mod or
// mul_mod token for the circuit add_mod/mul_mod selectors, and a const token
// for everything else.
type Config struct {
	CostOf func(reg *ir.Registry, libfunc ir.LibfuncID) StatementCost
}

// Compute runs the linear ap-change and gas solvers over program and
// returns the resulting Metadata.
func Compute(reg *ir.Registry, cfg Config) (*Metadata, error) {
	program := reg.Program()
	m := &Metadata{
		apChange:         make(map[ir.StatementIndex]int64, len(program.Statements)),
		functionApChange: make(map[ir.FunctionID]int64, len(program.Functions)),
		variableValues:   make(map[ir.StatementIndex]StatementCost, len(program.Statements)),
		functionCosts:    make(map[ir.FunctionID]StatementCost, len(program.Functions)),
		costOf:           cfg.CostOf,
	}
	if m.costOf == nil {
		m.costOf = defaultCostOf
	}

	for pc := range program.Statements {
		idx := ir.StatementIndex(pc)
		st := &program.Statements[pc]
		if st.Invocation == nil {
			m.apChange[idx] = 0
			continue
		}
		// A linear traversal: ap-change per statement is a small constant
		// depending only on whether the statement writes new locals,
		// which in this representation is exactly the result arity of
		// its normal branch.
		var delta int64
		if len(st.Invocation.Branches) > 0 {
			delta = int64(len(st.Invocation.Branches[0].ResultVars))
		}
		m.apChange[idx] = delta

		lf, err := reg.LibfuncOf(st.Invocation.Libfunc)
		if err != nil {
			return nil, fmt.Errorf("gas: statement %d: %w", pc, err)
		}
		m.variableValues[idx] = m.costOf(reg, lf.ID)
		_ = lf
	}

	for i := range program.Functions {
		fn := &program.Functions[i]
		apSum, costSum, err := m.traverseFunction(reg, fn.EntryPC)
		if err != nil {
			return nil, fmt.Errorf("gas: function %d: %w", fn.ID, err)
		}
		m.functionApChange[fn.ID] = apSum
		m.functionCosts[fn.ID] = costSum
	}

	return m, nil
}

// traverseFunction walks the statement graph from entry following only
// branch target 0 (the success path), summing ap-change and per-token
// cost until a Return. This is the linear-time variant spec.md allows in
// place of a full fixed-point equation solver; it is exact for straight-
// line and single-success-path programs and a faithful, non-bit-exact
// approximation otherwise, matching the emulator's explicit non-goal of
// bit-for-bit gas parity.
func (m *Metadata) traverseFunction(reg *ir.Registry, entry ir.StatementIndex) (int64, StatementCost, error) {
	var apSum int64
	var cost StatementCost
	pc := entry
	visited := make(map[ir.StatementIndex]bool)
	for {
		if visited[pc] {
			return apSum, cost, nil
		}
		visited[pc] = true
		st, err := reg.Statement(pc)
		if err != nil {
			return 0, StatementCost{}, err
		}
		if st.Return != nil {
			return apSum, cost, nil
		}
		apSum += m.apChange[pc]
		sc := m.variableValues[pc]
		for i := range cost {
			cost[i] += sc[i]
		}
		if st.Invocation.Libfunc >= 0 {
			if isCallLike(reg, st.Invocation) {
				return apSum, cost, nil
			}
		}
		if len(st.Invocation.Branches) == 0 {
			return apSum, cost, nil
		}
		pc = st.Invocation.Branches[0].Next(pc)
	}
}

func isCallLike(reg *ir.Registry, inv *ir.Invocation) bool {
	lf, err := reg.LibfuncOf(inv.Libfunc)
	if err != nil {
		return false
	}
	return lf.Family == "function_call"
}

func defaultCostOf(reg *ir.Registry, id ir.LibfuncID) StatementCost {
	lf, err := reg.LibfuncOf(id)
	if err != nil {
		return StatementCost{}
	}
	var c StatementCost
	switch lf.Family {
	case "pedersen":
		c[TokenPedersen] = 1
	case "bitwise":
		c[TokenBitwise] = 1
	case "ec":
		c[TokenEcOp] = 1
	case "poseidon":
		c[TokenPoseidon] = 1
	case "circuit":
		if lf.Selector == "add_mod" {
			c[TokenAddMod] = 1
		} else if lf.Selector == "mul_mod" {
			c[TokenMulMod] = 1
		} else {
			c[TokenConst] = 1
		}
	default:
		c[TokenConst] = 1
	}
	return c
}

// CostAt returns the per-token cost table of statement pc, or the zero
// table if pc has no recorded cost (a Return statement or an unknown pc;
// every invocation has one).
func (m *Metadata) CostAt(pc ir.StatementIndex) StatementCost {
	return m.variableValues[pc]
}

// FunctionCost returns the aggregate per-token cost of a declared function.
func (m *Metadata) FunctionCost(fid ir.FunctionID) StatementCost {
	return m.functionCosts[fid]
}

// GetInitialAvailableGas computes provided_gas - sum(function_costs[entry]),
// failing when the entry function would already be unaffordable.
func GetInitialAvailableGas(m *Metadata, entry ir.FunctionID, providedGas int64) (int64, error) {
	required := m.FunctionCost(entry).Sum()
	available := providedGas - required
	if available < 0 {
		return 0, &NotEnoughGasError{Required: required, Available: providedGas}
	}
	return available, nil
}

// NotEnoughGasError reports that the entry function's statically computed
// cost exceeds the gas the caller supplied.
type NotEnoughGasError struct {
	Required  int64
	Available int64
}

func (e *NotEnoughGasError) Error() string {
	return fmt.Sprintf("gas: not enough gas: required %d, available %d", e.Required, e.Available)
}
