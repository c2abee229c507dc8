// Package vm is the execution engine: the frame stack, the per-statement
// step algorithm, branch-target resolution, function-call/return
// discipline, and trace emission. Its step loop is grounded on the
// snapshot-before-execution / frame-stack-of-(function, pc, ordered-state)
// shape this module's own VM state machine always used, generalized from a
// fixed opcode tape to the libfunc dispatch table in dispatch.go.
package vm

import (
	"fmt"

	"github.com/feltvm/sierra-emu/internal/sierraemu/gas"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/syscall"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
)

// Frame is a per-function activation record.
type Frame struct {
	FunctionID ir.FunctionID
	PC         ir.StatementIndex
	State      *value.FrameState
}

// StateDump is a snapshot of a frame's environment taken immediately
// before executing a statement.
type StateDump struct {
	StatementIdx ir.StatementIndex
	PreState     *value.FrameState
}

// ProgramTrace is an append-only sequence of StateDump records.
type ProgramTrace struct {
	States []StateDump
}

// Engine holds the program, its registry, optional gas metadata, and the
// live frame stack.
type Engine struct {
	Registry *ir.Registry
	Gas      *gas.Metadata
	Syscalls syscall.Handler

	frames []*Frame
	trace  ProgramTrace

	availableGas uint64
	lastResults  []value.Value
}

// NewEngine constructs an Engine over an already-built registry. gasMeta
// and syscalls may both be nil (syscalls defaults to syscall.NoopHandler).
func NewEngine(reg *ir.Registry, gasMeta *gas.Metadata, syscalls syscall.Handler) *Engine {
	if syscalls == nil {
		syscalls = syscall.NoopHandler{}
	}
	return &Engine{Registry: reg, Gas: gasMeta, Syscalls: syscalls}
}

// SetAvailableGas seeds the engine's gas counter (consulted by withdraw_gas
// and friends); call after NewEngine and before the first PushFrame when
// the program uses gas builtins.
func (e *Engine) SetAvailableGas(v uint64) {
	e.availableGas = v
}

// AvailableGas returns the engine's current gas counter.
func (e *Engine) AvailableGas() uint64 {
	return e.availableGas
}

// Trace returns the accumulated program trace.
func (e *Engine) Trace() *ProgramTrace {
	return &e.trace
}

// PushFrame looks up function, verifies arity and type conformance of
// args, and pushes a new activation record bound to the function's entry
// statement.
func (e *Engine) PushFrame(fid ir.FunctionID, args []value.Value) error {
	fn, err := e.Registry.FunctionOf(fid)
	if err != nil {
		return err
	}
	if len(args) != len(fn.Params) {
		return fmt.Errorf("vm: function %d: expected %d args, got %d", fid, len(fn.Params), len(args))
	}
	state := value.NewFrameState()
	for i, p := range fn.Params {
		ok, err := value.IsOf(e.Registry, args[i], p.Type)
		if err != nil {
			return fmt.Errorf("vm: function %d: arg %d: %w", fid, i, err)
		}
		if !ok {
			return fmt.Errorf("vm: function %d: arg %d does not conform to declared type %d", fid, i, p.Type)
		}
		state.Bind(p.Var, args[i])
	}
	e.frames = append(e.frames, &Frame{FunctionID: fid, PC: fn.EntryPC, State: state})
	return nil
}

// Done reports whether the frame stack is empty.
func (e *Engine) Done() bool {
	return len(e.frames) == 0
}

// top returns the currently executing frame.
func (e *Engine) top() *Frame {
	return e.frames[len(e.frames)-1]
}

// Step executes one statement of the top frame, returning the pre-step
// snapshot. ok is false iff the frame stack was already empty.
func (e *Engine) Step() (dump StateDump, ok bool, err error) {
	if e.Done() {
		return StateDump{}, false, nil
	}

	frame := e.top()
	pc := frame.PC
	snapshot := frame.State.Snapshot()
	dump = StateDump{StatementIdx: pc, PreState: snapshot}
	e.trace.States = append(e.trace.States, dump)

	st, err := e.Registry.Statement(pc)
	if err != nil {
		return dump, true, err
	}

	switch {
	case st.Invocation != nil:
		err = e.stepInvocation(frame, st.Invocation)
	case st.Return != nil:
		err = e.stepReturn(frame, st.Return)
	default:
		err = fmt.Errorf("vm: statement %d is neither an invocation nor a return", pc)
	}
	return dump, true, err
}

func (e *Engine) stepInvocation(frame *Frame, inv *ir.Invocation) error {
	withdrawn := make([]value.Value, len(inv.Args))
	for i, varID := range inv.Args {
		v, ok := frame.State.Withdraw(varID)
		if !ok {
			return fmt.Errorf("vm: statement %d: missing variable %d", frame.PC, varID)
		}
		withdrawn[i] = v
	}

	lf, err := e.Registry.LibfuncOf(inv.Libfunc)
	if err != nil {
		return err
	}

	ctx := &Context{
		Engine: e,
		Info:   lf,
		PC:     frame.PC,
		Invoke: inv,
	}

	action, err := Dispatch(e.Registry, lf, withdrawn, ctx)
	if err != nil {
		return fmt.Errorf("vm: statement %d (%s.%s): %w", frame.PC, lf.Family, lf.Selector, err)
	}

	switch a := action.(type) {
	case NormalBranch:
		if a.Branch < 0 || a.Branch >= len(inv.Branches) {
			return fmt.Errorf("vm: statement %d: branch index %d out of range", frame.PC, a.Branch)
		}
		branch := inv.Branches[a.Branch]
		if len(a.Results) != len(branch.ResultVars) {
			return fmt.Errorf("vm: statement %d: branch %d expected %d results, got %d", frame.PC, a.Branch, len(branch.ResultVars), len(a.Results))
		}
		for i, varID := range branch.ResultVars {
			frame.State.Bind(varID, a.Results[i])
		}
		frame.PC = branch.Next(frame.PC)
		return nil
	case FunctionCall:
		// The withdrawn argument bindings are already gone from the
		// caller's state; they become the callee's parameter bindings,
		// and the caller's PC stays on the call site until the callee
		// returns (handled in stepReturn).
		return e.PushFrame(a.Target, a.Args)
	default:
		return fmt.Errorf("vm: statement %d: libfunc returned an unrecognized eval action", frame.PC)
	}
}

func (e *Engine) stepReturn(frame *Frame, ret *ir.Return) error {
	results := make([]value.Value, len(ret.Vars))
	for i, varID := range ret.Vars {
		v, ok := frame.State.Withdraw(varID)
		if !ok {
			return fmt.Errorf("vm: statement %d: return: missing variable %d", frame.PC, varID)
		}
		results[i] = v
	}
	if frame.State.Len() != 0 {
		return fmt.Errorf("vm: statement %d: return: residual state not empty (%d bindings)", frame.PC, frame.State.Len())
	}

	e.frames = e.frames[:len(e.frames)-1]
	if e.Done() {
		e.lastResults = results
		return nil
	}

	caller := e.top()
	callerSt, err := e.Registry.Statement(caller.PC)
	if err != nil {
		return err
	}
	if callerSt.Invocation == nil || len(callerSt.Invocation.Branches) != 1 {
		return fmt.Errorf("vm: statement %d: caller's top statement is not a single-branch call site", caller.PC)
	}
	branch := callerSt.Invocation.Branches[0]
	if len(results) != len(branch.ResultVars) {
		return fmt.Errorf("vm: statement %d: return arity %d does not match call site arity %d", frame.PC, len(results), len(branch.ResultVars))
	}
	for i, varID := range branch.ResultVars {
		caller.State.Bind(varID, results[i])
	}
	caller.PC = branch.Next(caller.PC)
	return nil
}

// LastResults holds the final entry function's returned values once the
// outermost frame has returned.
func (e *Engine) LastResults() []value.Value {
	return e.lastResults
}
