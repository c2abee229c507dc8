package ir

import "fmt"

// Registry materializes every concrete type and libfunc referenced by a
// Program into quick-lookup descriptors, grounded on the program's own
// Types/Libfuncs slices (the program is the sole source of truth; the
// registry never invents entries).
type Registry struct {
	program   *Program
	types     map[TypeID]*TypeDescriptor
	libfuncs  map[LibfuncID]*LibfuncDescriptor
	functions map[FunctionID]*Function
}

// NewRegistry builds a Registry over program, failing fatally (per the
// static/structural error kind) on duplicate identifiers.
func NewRegistry(program *Program) (*Registry, error) {
	r := &Registry{
		program:   program,
		types:     make(map[TypeID]*TypeDescriptor, len(program.Types)),
		libfuncs:  make(map[LibfuncID]*LibfuncDescriptor, len(program.Libfuncs)),
		functions: make(map[FunctionID]*Function, len(program.Functions)),
	}
	for i := range program.Types {
		t := &program.Types[i]
		if _, dup := r.types[t.ID]; dup {
			return nil, fmt.Errorf("ir: duplicate type id %d", t.ID)
		}
		r.types[t.ID] = t
	}
	for i := range program.Libfuncs {
		l := &program.Libfuncs[i]
		if _, dup := r.libfuncs[l.ID]; dup {
			return nil, fmt.Errorf("ir: duplicate libfunc id %d", l.ID)
		}
		r.libfuncs[l.ID] = l
	}
	for i := range program.Functions {
		f := &program.Functions[i]
		if _, dup := r.functions[f.ID]; dup {
			return nil, fmt.Errorf("ir: duplicate function id %d", f.ID)
		}
		r.functions[f.ID] = f
	}
	return r, nil
}

// TypeOf resolves a TypeID to its descriptor.
func (r *Registry) TypeOf(id TypeID) (*TypeDescriptor, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("ir: unknown type id %d", id)
	}
	return t, nil
}

// LibfuncOf resolves a LibfuncID to its descriptor.
func (r *Registry) LibfuncOf(id LibfuncID) (*LibfuncDescriptor, error) {
	l, ok := r.libfuncs[id]
	if !ok {
		return nil, fmt.Errorf("ir: unknown libfunc id %d", id)
	}
	return l, nil
}

// FunctionOf resolves a FunctionID to its declaration.
func (r *Registry) FunctionOf(id FunctionID) (*Function, error) {
	f, ok := r.functions[id]
	if !ok {
		return nil, fmt.Errorf("ir: unknown function id %d", id)
	}
	return f, nil
}

// Statement fetches program[pc], failing when pc is out of range.
func (r *Registry) Statement(pc StatementIndex) (*Statement, error) {
	if pc < 0 || int(pc) >= len(r.program.Statements) {
		return nil, fmt.Errorf("ir: program counter %d out of range", pc)
	}
	return &r.program.Statements[pc], nil
}

// Program returns the underlying Program.
func (r *Registry) Program() *Program {
	return r.program
}
