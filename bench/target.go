package bench

// Operation is one named, zero-argument unit of benchmarked work.
type Operation struct {
	Name   string
	Invoke func() error
}

// Func wraps a function that cannot fail as an Operation.
func Func(name string, fn func()) Operation {
	return Operation{Name: name, Invoke: func() error {
		fn()
		return nil
	}}
}

// Target exposes the operations to benchmark, in the order they should run.
// The runner asks once, at construction.
type Target interface {
	Operations() []Operation
}

// Registry is a Target built from an explicit registration list.
type Registry struct {
	ops []Operation
}

// NewRegistry returns a registry holding ops.
func NewRegistry(ops ...Operation) *Registry {
	return &Registry{ops: append([]Operation(nil), ops...)}
}

// Add registers fn under name and returns the registry for chaining.
func (r *Registry) Add(name string, fn func()) *Registry {
	r.ops = append(r.ops, Func(name, fn))
	return r
}

// AddE registers a fallible fn under name.
func (r *Registry) AddE(name string, fn func() error) *Registry {
	r.ops = append(r.ops, Operation{Name: name, Invoke: fn})
	return r
}

// Operations returns a copy of the registered operations.
func (r *Registry) Operations() []Operation {
	return append([]Operation(nil), r.ops...)
}
