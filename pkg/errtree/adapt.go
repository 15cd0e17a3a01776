package errtree

import (
	"reflect"
	"strings"
)

// Classified is implemented by errors that declare their exception class.
type Classified interface {
	ExceptionType() *Type
}

// Annotated is implemented by errors that carry notes.
type Annotated interface {
	Notes() []string
}

type multiUnwrapper interface {
	Unwrap() []error
}

// FromError adapts err using the default registry.
func FromError(err error) *Node {
	return defaultRegistry.FromError(err)
}

// FromError converts a Go error into a tree. A nil error yields nil and a
// *Node is returned as is.
//
// Errors exposing Unwrap() []error become groups; nil members are skipped.
// A group whose text is exactly the newline-joined text of its members, as
// produced by [errors.Join], gets an empty message. Classes come from
// [Classified] when implemented, otherwise from the Go dynamic type.
func (r *Registry) FromError(err error) *Node {
	if err == nil {
		return nil
	}

	if n, ok := err.(*Node); ok { //nolint:errorlint // Only the node itself is reused, not wrapped nodes.
		return n
	}

	var notes []string
	if annotated, ok := err.(Annotated); ok { //nolint:errorlint // Notes belong to this exact error.
		notes = annotated.Notes()
	}

	if multi, ok := err.(multiUnwrapper); ok { //nolint:errorlint // Group shape is a property of this exact error.
		return r.groupFromError(err, multi.Unwrap(), notes)
	}

	return &Node{typ: r.classOf(err, GoError), message: err.Error(), notes: notes}
}

func (r *Registry) groupFromError(err error, members []error, notes []string) *Node {
	children := make([]*Node, 0, len(members))
	texts := make([]string, 0, len(members))

	for _, member := range members {
		if member == nil {
			continue
		}

		children = append(children, r.FromError(member))
		texts = append(texts, member.Error())
	}

	message := err.Error()
	if message == strings.Join(texts, "\n") {
		message = ""
	}

	n := &Node{message: message, notes: notes, children: children, group: true}

	if classified, ok := err.(Classified); ok { //nolint:errorlint // Class belongs to this exact error.
		n.typ = classified.ExceptionType()

		return n
	}

	n.typ = ExceptionGroup
	if n.BaseOnly() {
		n.typ = BaseExceptionGroup
	}

	return n
}

func (r *Registry) classOf(err error, parent *Type) *Type {
	if classified, ok := err.(Classified); ok { //nolint:errorlint // Class belongs to this exact error.
		return classified.ExceptionType()
	}

	return r.typeOf(reflect.TypeOf(err), parent)
}
