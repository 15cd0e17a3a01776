package errtree

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Sentinel registry errors.
var (
	ErrUnknownType   = errors.New("unknown exception type")
	ErrDuplicateType = errors.New("exception type already defined")
	ErrNoParents     = errors.New("exception type needs at least one parent")
	ErrInvalidName   = errors.New("invalid exception type name")
)

// Registry resolves class names to classes and assigns classes to Go error
// types. The zero value is not usable; call [NewRegistry].
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Type
	byGo   map[reflect.Type]*Type
}

// NewRegistry returns a registry preloaded with the built-in classes.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Type),
		byGo:   make(map[reflect.Type]*Type),
	}

	for _, t := range builtinTypes() {
		r.byName[t.Name()] = t
	}

	return r
}

//nolint:gochecknoglobals // Process-wide registry used by the package-level helpers.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp := &Registry{
		byName: make(map[string]*Type, len(r.byName)),
		byGo:   make(map[reflect.Type]*Type, len(r.byGo)),
	}

	for name, t := range r.byName {
		cp.byName[name] = t
	}

	for goType, t := range r.byGo {
		cp.byGo[goType] = t
	}

	return cp
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]

	return t, ok
}

// Register adds t. Registering the same class twice is a no-op; a different
// class under a taken name is an error. Names must satisfy [ValidName].
func (r *Registry) Register(t *Type) error {
	if !ValidName(t.Name()) {
		return fmt.Errorf("%w: %q", ErrInvalidName, t.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byName[t.Name()]
	if ok && existing != t {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name())
	}

	r.byName[t.Name()] = t

	return nil
}

// Define creates and registers a class derived from the named parents.
func (r *Registry) Define(name string, parentNames ...string) (*Type, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if len(parentNames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoParents, name)
	}

	parents := make([]*Type, 0, len(parentNames))

	for _, parentName := range parentNames {
		parent, ok := r.Lookup(parentName)
		if !ok {
			return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownType, parentName, name)
		}

		parents = append(parents, parent)
	}

	t := NewType(name, parents...)

	err := r.Register(t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Names returns all registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))

	for name := range r.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Bind assigns class t to every error whose dynamic type is goType.
func (r *Registry) Bind(goType reflect.Type, t *Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byGo[goType] = t
}

// typeOf returns the class for a Go dynamic type, creating a [GoError]
// subclass named after the Go type on first sight.
func (r *Registry) typeOf(goType reflect.Type, parent *Type) *Type {
	r.mu.RLock()
	t, ok := r.byGo[goType]
	r.mu.RUnlock()

	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok = r.byGo[goType]; ok {
		return t
	}

	t = NewType(goType.String(), parent)
	r.byGo[goType] = t

	if _, taken := r.byName[t.Name()]; !taken && ValidName(t.Name()) {
		r.byName[t.Name()] = t
	}

	return t
}
