package errtree

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/errshape/pkg/textutil"
)

// Node is one raised exception. Group nodes carry an ordered list of child
// exceptions. Nodes are immutable; the With* methods return copies.
//
// Node implements error, and group nodes implement Unwrap() []error, so trees
// built with this package can be returned from Go code under test.
type Node struct {
	typ      *Type
	message  string
	notes    []string
	children []*Node
	group    bool
}

// New returns a leaf exception of class t.
func New(t *Type, message string) *Node {
	return &Node{typ: t, message: message}
}

// NewGroup returns an exception group. Its class is [BaseExceptionGroup] when
// any child is base-only and [ExceptionGroup] otherwise. Nil children are
// dropped.
func NewGroup(message string, children ...*Node) *Node {
	n := &Node{message: message, children: nonNil(children), group: true}

	n.typ = ExceptionGroup
	if n.BaseOnly() {
		n.typ = BaseExceptionGroup
	}

	return n
}

// NewTypedGroup returns an exception group of a caller-chosen group class.
// Nil children are dropped.
func NewTypedGroup(t *Type, message string, children ...*Node) *Node {
	return &Node{typ: t, message: message, children: nonNil(children), group: true}
}

func nonNil(children []*Node) []*Node {
	return slices.DeleteFunc(slices.Clone(children), func(c *Node) bool { return c == nil })
}

// WithNotes returns a copy of n with notes appended.
func (n *Node) WithNotes(notes ...string) *Node {
	cp := *n
	cp.notes = append(slices.Clone(n.notes), notes...)

	return &cp
}

// Type returns the exception class.
func (n *Node) Type() *Type {
	return n.typ
}

// Message returns the exception message without notes.
func (n *Node) Message() string {
	return n.message
}

// Notes returns the attached notes.
func (n *Node) Notes() []string {
	return slices.Clone(n.notes)
}

// IsGroup reports whether n is an exception group.
func (n *Node) IsGroup() bool {
	return n.group
}

// Children returns the direct children of a group, nil for a leaf.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// BaseOnly reports whether n derives only from [BaseException]. A group is
// base-only when its own class or any descendant is.
func (n *Node) BaseOnly() bool {
	if n.typ != nil && n.typ.BaseOnly() {
		return true
	}

	for _, child := range n.children {
		if child.BaseOnly() {
			return true
		}
	}

	return false
}

// Display is the text that patterns are searched in: the message followed by
// every note, newline separated.
func (n *Node) Display() string {
	if len(n.notes) == 0 {
		return n.message
	}

	return strings.Join(append([]string{n.message}, n.notes...), "\n")
}

// TypeName returns the class name, or "<nil>" for an untyped node.
func (n *Node) TypeName() string {
	if n.typ == nil {
		return "<nil>"
	}

	return n.typ.Name()
}

// Repr renders n as a constructor expression such as ValueError('foo') or
// ExceptionGroup('', [ValueError(), TypeError()]).
func (n *Node) Repr() string {
	var b strings.Builder

	n.writeRepr(&b)

	return b.String()
}

func (n *Node) writeRepr(b *strings.Builder) {
	b.WriteString(n.TypeName())
	b.WriteByte('(')

	if n.group {
		b.WriteString(textutil.Quote(n.message))
		b.WriteString(", [")

		for i, child := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}

			child.writeRepr(b)
		}

		b.WriteString("])")

		return
	}

	if n.message != "" {
		b.WriteString(textutil.Quote(n.message))
	}

	b.WriteByte(')')
}

// Error implements error.
func (n *Node) Error() string {
	var b strings.Builder

	b.WriteString(n.TypeName())

	if n.message != "" {
		b.WriteString(": ")
		b.WriteString(n.message)
	}

	if n.group {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(len(n.children)))
		b.WriteString(" sub-exception")

		if len(n.children) != 1 {
			b.WriteByte('s')
		}

		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap exposes the children of a group to [errors.Is] and [errors.As].
func (n *Node) Unwrap() []error {
	if !n.group {
		return nil
	}

	errs := make([]error, len(n.children))

	for i, child := range n.children {
		errs[i] = child
	}

	return errs
}
