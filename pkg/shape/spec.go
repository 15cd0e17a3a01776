// Package shape declares expected exception shapes: a single class, a
// predicate over one exception, or a group of expected exceptions.
//
// Shapes are immutable. Constructors validate eagerly and return a
// [*ConfigurationError] for combinations that could never match or that
// would silently ignore a criterion.
package shape

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
)

// Spec is one node of an expected shape. It is a closed union of
// [*TypeSpec], [*PredicateSpec] and [*GroupSpec].
type Spec interface {
	fmt.Stringer

	// BaseOnly reports whether the shape expects an exception deriving only
	// from BaseException.
	BaseOnly() bool

	sealed()
}

// TypeSpec expects an exception of a class or one of its subclasses.
type TypeSpec struct {
	typ *errtree.Type
}

// PredicateSpec expects an exception satisfying every present criterion.
type PredicateSpec struct {
	typ     *errtree.Type
	pattern *regexp.Regexp
	check   Check
}

// GroupSpec expects an exception group whose children pair up one-to-one
// with Children.
type GroupSpec struct {
	children  []Spec
	pattern   *regexp.Regexp
	check     Check
	flatten   bool
	unwrapped bool
	base      bool
}

func (*TypeSpec) sealed()      {}
func (*PredicateSpec) sealed() {}
func (*GroupSpec) sealed()     {}

// Type returns a shape expecting class t.
func Type(t *errtree.Type) (*TypeSpec, error) {
	err := validateType(t)
	if err != nil {
		return nil, err
	}

	return &TypeSpec{typ: t}, nil
}

// MustType is like [Type] but panics on error.
func MustType(t *errtree.Type) *TypeSpec {
	s, err := Type(t)
	if err != nil {
		panic(err)
	}

	return s
}

// Type returns the expected class.
func (s *TypeSpec) Type() *errtree.Type {
	return s.typ
}

// BaseOnly implements [Spec].
func (s *TypeSpec) BaseOnly() bool {
	return s.typ.BaseOnly()
}

// MatcherOption configures a [PredicateSpec].
type MatcherOption func(*matcherConfig)

type matcherConfig struct {
	typ     *errtree.Type
	pattern *string
	check   Check
}

// OfType restricts a matcher to class t and its subclasses.
func OfType(t *errtree.Type) MatcherOption {
	return func(c *matcherConfig) { c.typ = t }
}

// Matching requires pattern to match somewhere in the exception's message
// and notes.
func Matching(pattern string) MatcherOption {
	return func(c *matcherConfig) { c.pattern = &pattern }
}

// Checking requires check to return true for the exception.
func Checking(check Check) MatcherOption {
	return func(c *matcherConfig) { c.check = check }
}

// Matcher returns a predicate shape. At least one criterion is required.
func Matcher(opts ...MatcherOption) (*PredicateSpec, error) {
	var cfg matcherConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return newPredicate(cfg)
}

// MustMatcher is like [Matcher] but panics on error.
func MustMatcher(opts ...MatcherOption) *PredicateSpec {
	s, err := Matcher(opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func newPredicate(cfg matcherConfig) (*PredicateSpec, error) {
	if cfg.typ == nil && cfg.pattern == nil && cfg.check == nil {
		return nil, configError(ErrNoCriteria, "you must specify at least one parameter to match on")
	}

	if cfg.typ != nil {
		err := validateType(cfg.typ)
		if err != nil {
			return nil, err
		}
	}

	re, err := compilePattern(cfg.pattern)
	if err != nil {
		return nil, err
	}

	return &PredicateSpec{typ: cfg.typ, pattern: re, check: cfg.check}, nil
}

// WithOptions returns a copy of s with opts applied on top of its current
// criteria, validated like a fresh [Matcher].
func (s *PredicateSpec) WithOptions(opts ...MatcherOption) (*PredicateSpec, error) {
	cfg := matcherConfig{typ: s.typ, check: s.check}

	if s.pattern != nil {
		pattern := s.pattern.String()
		cfg.pattern = &pattern
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return newPredicate(cfg)
}

// Type returns the expected class, nil when any class is accepted.
func (s *PredicateSpec) Type() *errtree.Type {
	return s.typ
}

// Pattern returns the pattern source and whether one is set.
func (s *PredicateSpec) Pattern() (string, bool) {
	return patternSource(s.pattern)
}

// Regexp returns the compiled pattern, nil when unset.
func (s *PredicateSpec) Regexp() *regexp.Regexp {
	return s.pattern
}

// Check returns the custom check, nil when unset.
func (s *PredicateSpec) Check() Check {
	return s.check
}

// BaseOnly implements [Spec].
func (s *PredicateSpec) BaseOnly() bool {
	return s.typ != nil && s.typ.BaseOnly()
}

// GroupOption configures a [GroupSpec].
type GroupOption func(*groupConfig)

type groupConfig struct {
	pattern   *string
	check     Check
	flatten   bool
	unwrapped bool
}

// FlattenSubgroups makes the group match against the leaves of the raised
// group, ignoring how they are nested.
func FlattenSubgroups() GroupOption {
	return func(c *groupConfig) { c.flatten = true }
}

// AllowUnwrapped lets a lone exception satisfy the group's single child.
func AllowUnwrapped() GroupOption {
	return func(c *groupConfig) { c.unwrapped = true }
}

// GroupMatching requires pattern to match the group's own message and notes.
func GroupMatching(pattern string) GroupOption {
	return func(c *groupConfig) { c.pattern = &pattern }
}

// GroupChecking requires check to return true for the group itself.
func GroupChecking(check Check) GroupOption {
	return func(c *groupConfig) { c.check = check }
}

func setFlatten(on bool) GroupOption {
	return func(c *groupConfig) { c.flatten = on }
}

func setUnwrapped(on bool) GroupOption {
	return func(c *groupConfig) { c.unwrapped = on }
}

// Group returns a group shape expecting children, in any order.
func Group(children []Spec, opts ...GroupOption) (*GroupSpec, error) {
	var cfg groupConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return newGroup(slices.Clone(children), cfg)
}

// MustGroup is like [Group] but panics on error.
func MustGroup(children []Spec, opts ...GroupOption) *GroupSpec {
	s, err := Group(children, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func newGroup(children []Spec, cfg groupConfig) (*GroupSpec, error) {
	if len(children) == 0 {
		return nil, configError(ErrNoChildren, "you must specify at least one expected exception")
	}

	for _, child := range children {
		if child == nil {
			return nil, configError(ErrNilSpec, "expected exception must be a class, Matcher or group, got nil")
		}
	}

	if cfg.unwrapped {
		err := validateUnwrapped(children, cfg)
		if err != nil {
			return nil, err
		}
	}

	g := &GroupSpec{children: children, check: cfg.check, flatten: cfg.flatten, unwrapped: cfg.unwrapped}

	for _, child := range children {
		if _, nested := child.(*GroupSpec); nested && cfg.flatten {
			return nil, configError(ErrFlattenNested,
				"you cannot specify a nested structure inside a group with `flatten_subgroups=True`. "+
					"The parameter will flatten subgroups in the raised exception group before matching, "+
					"which would never match a nested structure")
		}

		g.base = g.base || child.BaseOnly()
	}

	re, err := compilePattern(cfg.pattern)
	if err != nil {
		return nil, err
	}

	g.pattern = re

	return g, nil
}

func validateUnwrapped(children []Spec, cfg groupConfig) error {
	if len(children) > 1 {
		return configError(ErrUnwrappedMultiple,
			"you cannot specify multiple exceptions with `allow_unwrapped=True`. "+
				"If you want to match one of multiple possible exceptions you should use a `Matcher` "+
				"with a check accepting any of them")
	}

	if _, nested := children[0].(*GroupSpec); nested {
		return configError(ErrUnwrappedNested,
			"`allow_unwrapped=True` has no effect when expecting a nested group. "+
				"You might want it in the expected nested group, "+
				"or `flatten_subgroups=True` if you don't care about the structure")
	}

	if cfg.pattern != nil || cfg.check != nil {
		return configError(ErrUnwrappedCriteria,
			"`allow_unwrapped=True` bypasses the `match` and `check` parameters if the exception is unwrapped. "+
				"If you intended to match/check the exception you should use a `Matcher` object. "+
				"If you want to match/check the exception group when the exception *is* wrapped "+
				"you need to match it again with a plain group shape afterwards")
	}

	return nil
}

// WithOptions returns a copy of g with opts applied on top of its current
// settings, validated like a fresh [Group].
func (g *GroupSpec) WithOptions(opts ...GroupOption) (*GroupSpec, error) {
	cfg := groupConfig{check: g.check, flatten: g.flatten, unwrapped: g.unwrapped}

	if g.pattern != nil {
		pattern := g.pattern.String()
		cfg.pattern = &pattern
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return newGroup(slices.Clone(g.children), cfg)
}

// WithFlattenSubgroups returns a copy of g with flattening set to on.
func (g *GroupSpec) WithFlattenSubgroups(on bool) (*GroupSpec, error) {
	return g.WithOptions(setFlatten(on))
}

// WithAllowUnwrapped returns a copy of g with unwrapping set to on.
func (g *GroupSpec) WithAllowUnwrapped(on bool) (*GroupSpec, error) {
	return g.WithOptions(setUnwrapped(on))
}

// Children returns the expected children in declaration order.
func (g *GroupSpec) Children() []Spec {
	return slices.Clone(g.children)
}

// FlattenSubgroups reports whether nested raised groups are flattened.
func (g *GroupSpec) FlattenSubgroups() bool {
	return g.flatten
}

// AllowUnwrapped reports whether a lone exception may stand in for the group.
func (g *GroupSpec) AllowUnwrapped() bool {
	return g.unwrapped
}

// Pattern returns the group pattern source and whether one is set.
func (g *GroupSpec) Pattern() (string, bool) {
	return patternSource(g.pattern)
}

// Regexp returns the compiled group pattern, nil when unset.
func (g *GroupSpec) Regexp() *regexp.Regexp {
	return g.pattern
}

// Check returns the group check, nil when unset.
func (g *GroupSpec) Check() Check {
	return g.check
}

// BaseOnly implements [Spec]. It is true when any child expects a base-only
// exception.
func (g *GroupSpec) BaseOnly() bool {
	return g.base
}

// ExceptionType returns the group class this shape stands for.
func (g *GroupSpec) ExceptionType() *errtree.Type {
	if g.base {
		return errtree.BaseExceptionGroup
	}

	return errtree.ExceptionGroup
}

func validateType(t *errtree.Type) error {
	if t == nil {
		return configError(ErrNilType, "exception type must not be nil")
	}

	if !errtree.ValidName(t.Name()) {
		return configError(ErrInvalidTypeName,
			fmt.Sprintf("exception type name %q must be non-empty without whitespace or any of ,()='\"", t.Name()))
	}

	if !t.IsException() {
		return configError(ErrNotException,
			fmt.Sprintf("exception type %s must be a subclass of BaseException", t.Name()))
	}

	return nil
}

func compilePattern(pattern *string) (*regexp.Regexp, error) {
	if pattern == nil {
		return nil, nil //nolint:nilnil // An absent pattern is not an error.
	}

	re, err := regexp.Compile(*pattern)
	if err != nil {
		return nil, configError(ErrInvalidPattern, fmt.Sprintf("invalid pattern %q: %v", *pattern, err))
	}

	return re, nil
}

func patternSource(re *regexp.Regexp) (string, bool) {
	if re == nil {
		return "", false
	}

	return re.String(), true
}
