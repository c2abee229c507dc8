package sierraemu

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/gas"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/internal/sierraemu/syscall"
	"github.com/feltvm/sierra-emu/internal/sierraemu/value"
	"github.com/feltvm/sierra-emu/internal/sierraemu/vm"
)

// Emulator is the public interface over one loaded Program: look up entry
// points, run one to completion, and inspect the resulting trace.
type Emulator interface {
	// FunctionByName resolves a declared function by its diagnostic name.
	FunctionByName(name string) (ir.FunctionID, bool)

	// Run pushes a frame for entry with args, steps the engine to
	// completion, and returns the final trace and the entry function's
	// returned values.
	Run(entry ir.FunctionID, args []value.Value, providedGas uint64) (*Trace, []value.Value, error)
}

type emulator struct {
	reg      *ir.Registry
	gas      *gas.Metadata
	syscalls syscall.Handler
}

// Option configures NewEmulator.
type Option func(*options)

type options struct {
	gasConfig  gas.Config
	syscalls   syscall.Handler
	computeGas bool
}

// WithGasConfig supplies a non-default per-libfunc cost function for the
// gas-metadata computation.
func WithGasConfig(cfg gas.Config) Option {
	return func(o *options) {
		o.gasConfig = cfg
		o.computeGas = true
	}
}

// WithSyscallHandler supplies the embedder's host-effect implementation.
// Defaults to a handler that fails every syscall.
func WithSyscallHandler(h syscall.Handler) Option {
	return func(o *options) { o.syscalls = h }
}

// NewEmulator builds a Registry and GasMetadata over program and returns the
// ready-to-run Emulator. Gas metadata is always computed; no option turns it
// off.
func NewEmulator(program *ir.Program, opts ...Option) (Emulator, error) {
	reg, err := ir.NewRegistry(program)
	if err != nil {
		return nil, wrapf(ErrConstruction, err, "building type/libfunc registry")
	}

	o := &options{computeGas: true, syscalls: syscall.NoopHandler{}}
	for _, opt := range opts {
		opt(o)
	}

	var gasMeta *gas.Metadata
	if o.computeGas {
		gasMeta, err = gas.Compute(reg, o.gasConfig)
		if err != nil {
			return nil, wrapf(ErrConstruction, err, "computing gas metadata")
		}
	}

	return &emulator{reg: reg, gas: gasMeta, syscalls: o.syscalls}, nil
}

func (e *emulator) FunctionByName(name string) (ir.FunctionID, bool) {
	for _, fn := range e.reg.Program().Functions {
		if fn.Name == name {
			return fn.ID, true
		}
	}
	return 0, false
}

// Run executes entry to completion, first deducting the entry function's
// statically computed cost from providedGas (ErrNotEnoughGas if it does not
// cover it). Any error raised while stepping is reported with Code
// ErrConstruction, whatever its kind.
func (e *emulator) Run(entry ir.FunctionID, args []value.Value, providedGas uint64) (*Trace, []value.Value, error) {
	engine := vm.NewEngine(e.reg, e.gas, e.syscalls)

	if e.gas != nil {
		available, err := gas.GetInitialAvailableGas(e.gas, entry, int64(providedGas))
		if err != nil {
			return nil, nil, wrapf(ErrNotEnoughGas, err, "entry function %d", entry)
		}
		engine.SetAvailableGas(uint64(available))
	} else {
		engine.SetAvailableGas(providedGas)
	}

	if err := engine.PushFrame(entry, args); err != nil {
		return nil, nil, wrapf(ErrInvalidInput, err, "pushing entry frame for function %d", entry)
	}

	for {
		_, ok, err := engine.Step()
		if err != nil {
			return nil, nil, wrapf(ErrConstruction, err, "stepping function %d", entry)
		}
		if !ok {
			break
		}
		if engine.Done() {
			break
		}
	}

	return &Trace{inner: engine.Trace()}, engine.LastResults(), nil
}
