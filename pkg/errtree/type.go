// Package errtree models raised exceptions as read-only trees: a class
// hierarchy, leaf exceptions, and exception groups with ordered children.
//
// Go errors are adapted into trees with [Registry.FromError]: an error that
// exposes Unwrap() []error becomes a group, any other error a leaf.
package errtree

import (
	"slices"
	"strings"
	"unicode"
)

// Type is an exception class. Classes form a multiple-inheritance hierarchy
// rooted at [BaseException].
type Type struct {
	name    string
	parents []*Type
}

// NewType returns a class derived from parents. A class without parents is a
// root of its own hierarchy and is not an exception class.
func NewType(name string, parents ...*Type) *Type {
	return &Type{name: name, parents: slices.Clone(parents)}
}

// nameStops are the runes a class name may not contain besides whitespace.
const nameStops = ",()='\""

// IsNameRune reports whether r may appear in a class name.
func IsNameRune(r rune) bool {
	return r != 0 && !unicode.IsSpace(r) && !strings.ContainsRune(nameStops, r)
}

// ValidName reports whether name can be written in a shape representation
// and read back: it is non-empty and every rune satisfies [IsNameRune].
func ValidName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if !IsNameRune(r) {
			return false
		}
	}

	return true
}

// Name returns the class name.
func (t *Type) Name() string {
	return t.name
}

// String implements [fmt.Stringer].
func (t *Type) String() string {
	return t.name
}

// Parents returns the direct base classes in declaration order.
func (t *Type) Parents() []*Type {
	return slices.Clone(t.parents)
}

// IsSubtypeOf reports whether t is other or derives from it.
func (t *Type) IsSubtypeOf(other *Type) bool {
	if t == nil || other == nil {
		return false
	}

	if t == other {
		return true
	}

	for _, parent := range t.parents {
		if parent.IsSubtypeOf(other) {
			return true
		}
	}

	return false
}

// IsException reports whether t derives from [BaseException].
func (t *Type) IsException() bool {
	return t.IsSubtypeOf(BaseException)
}

// BaseOnly reports whether t derives from [BaseException] but not from
// [Exception].
func (t *Type) BaseOnly() bool {
	return t.IsException() && !t.IsSubtypeOf(Exception)
}

// IsGroupType reports whether t is an exception group class.
func (t *Type) IsGroupType() bool {
	return t.IsSubtypeOf(BaseExceptionGroup)
}

// Built-in classes.
//
//nolint:gochecknoglobals // The built-in hierarchy is immutable.
var (
	BaseException      = NewType("BaseException")
	Exception          = NewType("Exception", BaseException)
	BaseExceptionGroup = NewType("BaseExceptionGroup", BaseException)
	ExceptionGroup     = NewType("ExceptionGroup", BaseExceptionGroup, Exception)

	KeyboardInterrupt = NewType("KeyboardInterrupt", BaseException)
	SystemExit        = NewType("SystemExit", BaseException)
	GeneratorExit     = NewType("GeneratorExit", BaseException)

	ArithmeticError     = NewType("ArithmeticError", Exception)
	ZeroDivisionError   = NewType("ZeroDivisionError", ArithmeticError)
	AssertionError      = NewType("AssertionError", Exception)
	AttributeError      = NewType("AttributeError", Exception)
	LookupError         = NewType("LookupError", Exception)
	IndexError          = NewType("IndexError", LookupError)
	KeyError            = NewType("KeyError", LookupError)
	OSError             = NewType("OSError", Exception)
	TimeoutError        = NewType("TimeoutError", OSError)
	RuntimeError        = NewType("RuntimeError", Exception)
	NotImplementedError = NewType("NotImplementedError", RuntimeError)
	SyntaxError         = NewType("SyntaxError", Exception)
	TypeError           = NewType("TypeError", Exception)
	ValueError          = NewType("ValueError", Exception)

	// GoError is the class of adapted Go errors that do not declare one.
	GoError = NewType("GoError", Exception)
)

func builtinTypes() []*Type {
	return []*Type{
		BaseException, Exception, BaseExceptionGroup, ExceptionGroup,
		KeyboardInterrupt, SystemExit, GeneratorExit,
		ArithmeticError, ZeroDivisionError, AssertionError, AttributeError,
		LookupError, IndexError, KeyError, OSError, TimeoutError,
		RuntimeError, NotImplementedError, SyntaxError, TypeError, ValueError,
		GoError,
	}
}
