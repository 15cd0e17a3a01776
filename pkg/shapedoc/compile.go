package shapedoc

import (
	"errors"
	"fmt"
	"maps"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

// Compile errors.
var (
	ErrNoShape      = errors.New("document has no shape")
	ErrNotGroupType = errors.New("exception class is not a group class")
	ErrMissingType  = errors.New("raised exception has no type")
)

// Compiled is a document resolved into shapes and trees.
type Compiled struct {
	// Registry holds the builtin classes plus the document's declarations.
	Registry *errtree.Registry
	// Shape and Raised are the top-level pair, nil when absent.
	Shape  shape.Spec
	Raised *errtree.Node
	Cases  []CompiledCase
}

// CompiledCase is a resolved suite case.
type CompiledCase struct {
	Name       string
	Shape      shape.Spec
	Raised     *errtree.Node
	WantMatch  bool
	Diagnostic *string
}

type compiler struct {
	reg      *errtree.Registry
	resolver shape.Resolver
}

// Compile resolves d. Checks are looked up in extra first, then in
// [BuiltinChecks].
func (d *Document) Compile(extra shape.CheckSet) (*Compiled, error) {
	checks := BuiltinChecks()
	maps.Copy(checks, extra)

	reg := errtree.NewRegistry()

	for _, decl := range d.Types {
		_, err := reg.Define(decl.Name, decl.Parents...)
		if err != nil {
			return nil, fmt.Errorf("declare %s: %w", decl.Name, err)
		}
	}

	c := &compiler{reg: reg, resolver: shape.Resolver{Types: reg, Checks: checks}}
	out := &Compiled{Registry: reg}

	if d.Shape != nil {
		s, err := c.shape(*d.Shape)
		if err != nil {
			return nil, fmt.Errorf("shape: %w", err)
		}

		out.Shape = s
	}

	if d.Raised != nil {
		n, err := c.raised(*d.Raised)
		if err != nil {
			return nil, fmt.Errorf("raised: %w", err)
		}

		out.Raised = n
	}

	for _, tc := range d.Cases {
		compiled, err := c.testCase(tc)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", tc.Name, err)
		}

		out.Cases = append(out.Cases, compiled)
	}

	return out, nil
}

func (c *compiler) testCase(tc Case) (CompiledCase, error) {
	s, err := c.shape(tc.Shape)
	if err != nil {
		return CompiledCase{}, fmt.Errorf("shape: %w", err)
	}

	out := CompiledCase{Name: tc.Name, Shape: s, WantMatch: tc.Want == WantMatch, Diagnostic: tc.Diagnostic}

	if tc.Raised != nil {
		out.Raised, err = c.raised(*tc.Raised)
		if err != nil {
			return CompiledCase{}, fmt.Errorf("raised: %w", err)
		}
	}

	return out, nil
}

func (c *compiler) shape(n ShapeNode) (shape.Spec, error) {
	switch {
	case n.Expr != "":
		return shape.Parse(n.Expr, c.resolver)
	case n.Type != "":
		t, err := c.lookup(n.Type)
		if err != nil {
			return nil, err
		}

		return shape.Type(t)
	case n.Matcher != nil:
		return c.matcher(*n.Matcher)
	case n.Group != nil:
		return c.group(*n.Group)
	default:
		return nil, fmt.Errorf("%w: empty shape", ErrInvalidDocument)
	}
}

func (c *compiler) matcher(m MatcherNode) (shape.Spec, error) {
	var opts []shape.MatcherOption

	if m.Type != "" {
		t, err := c.lookup(m.Type)
		if err != nil {
			return nil, err
		}

		opts = append(opts, shape.OfType(t))
	}

	if m.Match != nil {
		opts = append(opts, shape.Matching(*m.Match))
	}

	if m.Check != "" {
		check, err := c.check(m.Check)
		if err != nil {
			return nil, err
		}

		opts = append(opts, shape.Checking(check))
	}

	return shape.Matcher(opts...)
}

func (c *compiler) group(g GroupNode) (shape.Spec, error) {
	children := make([]shape.Spec, 0, len(g.Children))

	for i, child := range g.Children {
		s, err := c.shape(child)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}

		children = append(children, s)
	}

	var opts []shape.GroupOption

	if g.FlattenSubgroups {
		opts = append(opts, shape.FlattenSubgroups())
	}

	if g.AllowUnwrapped {
		opts = append(opts, shape.AllowUnwrapped())
	}

	if g.Match != nil {
		opts = append(opts, shape.GroupMatching(*g.Match))
	}

	if g.Check != "" {
		check, err := c.check(g.Check)
		if err != nil {
			return nil, err
		}

		opts = append(opts, shape.GroupChecking(check))
	}

	return shape.Group(children, opts...)
}

func (c *compiler) raised(r Raised) (*errtree.Node, error) {
	var typ *errtree.Type

	if r.Type != "" {
		t, err := c.lookup(r.Type)
		if err != nil {
			return nil, err
		}

		typ = t
	}

	if r.Exceptions == nil && (typ == nil || !typ.IsGroupType()) {
		if typ == nil {
			return nil, ErrMissingType
		}

		return errtree.New(typ, r.Message).WithNotes(r.Notes...), nil
	}

	children := make([]*errtree.Node, 0, len(r.Exceptions))

	for i, child := range r.Exceptions {
		n, err := c.raised(child)
		if err != nil {
			return nil, fmt.Errorf("exception %d: %w", i, err)
		}

		children = append(children, n)
	}

	if typ == nil {
		return errtree.NewGroup(r.Message, children...).WithNotes(r.Notes...), nil
	}

	if !typ.IsGroupType() {
		return nil, fmt.Errorf("%w: %s", ErrNotGroupType, typ.Name())
	}

	return errtree.NewTypedGroup(typ, r.Message, children...).WithNotes(r.Notes...), nil
}

func (c *compiler) lookup(name string) (*errtree.Type, error) {
	t, ok := c.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errtree.ErrUnknownType, name)
	}

	return t, nil
}

func (c *compiler) check(name string) (shape.Check, error) {
	check, ok := c.resolver.Checks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shape.ErrUnknownCheck, name)
	}

	return check, nil
}
