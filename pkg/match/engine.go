package match

import (
	"github.com/Sumatoshi-tech/errshape/pkg/alg/bipartite"
	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

// Outcome is the result of one match.
type Outcome struct {
	// Success reports whether the exception conforms to the shape.
	Success bool `json:"success"`
	// Diagnostic explains a failure. It is empty on success.
	Diagnostic string `json:"diagnostic,omitempty"`
	// Itemized reports that Diagnostic is a multi-line block report rather
	// than a sentence.
	Itemized bool `json:"itemized,omitempty"`
}

// Report renders a failed outcome behind prefix, starting block reports on
// their own line. It returns "" on success.
func (o Outcome) Report(prefix string) string {
	if o.Success {
		return ""
	}

	if o.Itemized {
		return prefix + "\n" + o.Diagnostic
	}

	return prefix + " " + o.Diagnostic
}

const (
	headlineGroup     = "Raised exception group did not match:"
	headlineUnwrapped = "Raised exception (group) did not match:"
	headlineSingle    = "Raised exception did not match:"
)

// Headline returns the sentence that introduces a failed outcome for spec,
// suitable as the prefix of [Outcome.Report].
func Headline(spec shape.Spec) string {
	g, ok := spec.(*shape.GroupSpec)

	switch {
	case !ok:
		return headlineSingle
	case g.AllowUnwrapped():
		return headlineUnwrapped
	default:
		return headlineGroup
	}
}

// Renderer renders raised exceptions inside diagnostics.
type Renderer interface {
	Repr(n *errtree.Node) string
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(n *errtree.Node) string

// Repr implements [Renderer].
func (f RendererFunc) Repr(n *errtree.Node) string { return f(n) }

type reprRenderer struct{}

func (reprRenderer) Repr(n *errtree.Node) string { return n.Repr() }

// Engine matches shapes against raised exceptions. The zero value is not
// usable; construct with [New]. An Engine is safe for concurrent use.
type Engine struct {
	renderer Renderer
	registry *errtree.Registry
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRenderer sets how raised exceptions are shown in diagnostics. The
// default is [errtree.Node.Repr].
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithRegistry sets the registry used by [Engine.MatchError] to classify Go
// errors. The default is [errtree.Default].
func WithRegistry(r *errtree.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// New returns an Engine with opts applied.
func New(opts ...Option) *Engine {
	e := &Engine{renderer: reprRenderer{}}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

var defaultEngine = New()

// Match matches spec against n with the default engine.
func Match(spec shape.Spec, n *errtree.Node) Outcome {
	return defaultEngine.Match(spec, n)
}

// MatchError matches spec against a Go error with the default engine.
func MatchError(spec shape.Spec, err error) Outcome {
	return defaultEngine.MatchError(spec, err)
}

// Match reports whether n conforms to spec. A group spec requires n to be a
// group unless it allows unwrapping; any other spec is checked against n
// itself.
func (e *Engine) Match(spec shape.Spec, n *errtree.Node) Outcome {
	switch {
	case spec == nil:
		return failed(inline("no expected exception shape"))
	case n == nil:
		return failed(inline("no exception was raised"))
	}

	r := e.newRun(true).spec(spec, n)
	if r == nil {
		return Outcome{Success: true}
	}

	return failed(r)
}

// MatchError converts err with [errtree.Registry.FromError] and matches it.
func (e *Engine) MatchError(spec shape.Spec, err error) Outcome {
	reg := e.registry
	if reg == nil {
		reg = errtree.Default()
	}

	return e.Match(spec, reg.FromError(err))
}

func failed(r *reason) Outcome {
	return Outcome{Diagnostic: joinLines(r.lines), Itemized: r.itemized}
}

// run evaluates one match. Hypothetical reruns used to vet suggestions do not
// suggest themselves.
type run struct {
	engine  *Engine
	suggest bool
}

func (e *Engine) newRun(suggest bool) *run {
	return &run{engine: e, suggest: suggest}
}

func (r *run) quiet() *run {
	return r.engine.newRun(false)
}

// spec returns why s rejects n, nil when it accepts it.
func (r *run) spec(s shape.Spec, n *errtree.Node) *reason {
	switch s := s.(type) {
	case *shape.TypeSpec:
		return typeReason(s.Type(), n)
	case *shape.PredicateSpec:
		return r.predicate(s, n)
	case *shape.GroupSpec:
		return r.group(s, n)
	default:
		return inline("unsupported expected exception " + s.String())
	}
}

// cell is the reason used inside a level: nested specs label their reason.
func (r *run) cell(s shape.Spec, n *errtree.Node) *reason {
	return cellReason(s, r.spec(s, n))
}

func (r *run) predicate(s *shape.PredicateSpec, n *errtree.Node) *reason {
	if t := s.Type(); t != nil {
		if why := typeReason(t, n); why != nil {
			return why
		}
	}

	if re := s.Regexp(); re != nil && !re.MatchString(n.Display()) {
		why := patternReason(re.String(), n)

		if r.suggest && r.escapedPredicateMatches(s, n) {
			why.suggest(escapeSuggestion)
		}

		return why
	}

	if c := s.Check(); c != nil {
		return checkReason(c, n, false)
	}

	return nil
}

func (r *run) group(g *shape.GroupSpec, n *errtree.Node) *reason {
	if !n.IsGroup() {
		return r.lone(g, n)
	}

	if re := g.Regexp(); re != nil && !re.MatchString(n.Display()) {
		why := patternReason(re.String(), n)

		if r.suggest && r.escapedGroupMatches(g, n) {
			why.suggest(escapeSuggestion)
		}

		return why
	}

	actuals := n.Children()
	if g.FlattenSubgroups() {
		actuals = flatten(actuals)
	}

	if why := r.level(g.Children(), actuals); why != nil {
		if r.suggest && r.flattenedGroupMatches(g, n, actuals) {
			why.suggest(flattenSuggestion)
		}

		return why
	}

	if c := g.Check(); c != nil {
		return checkReason(c, n, true)
	}

	return nil
}

// lone handles a group spec facing a single, ungrouped exception.
func (r *run) lone(g *shape.GroupSpec, n *errtree.Node) *reason {
	children := g.Children()
	if len(children) > 1 {
		return notGroupReason(n)
	}

	if g.AllowUnwrapped() {
		return r.cell(children[0], n)
	}

	why := notGroupReason(n)

	if r.suggest && r.unwrappedGroupMatches(g, n) {
		why.lines[0] += unwrapSuggestion
	}

	return why
}

// level pairs expected children with raised children.
func (r *run) level(specs []shape.Spec, actuals []*errtree.Node) *reason {
	cells := make([][]*reason, len(specs))

	for i, s := range specs {
		cells[i] = make([]*reason, len(actuals))

		for j, a := range actuals {
			cells[i][j] = r.cell(s, a)
		}
	}

	pairing := bipartite.NewGraph(len(specs), len(actuals), func(i, j int) bool {
		return cells[i][j] == nil
	}).Match()

	if pairing.Complete() && len(specs) == len(actuals) {
		return nil
	}

	a := &attempt{
		specs:   specs,
		actuals: actuals,
		cells:   cells,
		pairing: pairing,
		render:  r.engine.renderer.Repr,
	}

	return a.report()
}
