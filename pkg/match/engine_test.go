package match_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/match"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

type matchCase struct {
	name   string
	spec   shape.Spec
	raised *errtree.Node
	want   string
}

func runCases(t *testing.T, tests []matchCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := match.Match(tt.spec, tt.raised)

			if tt.want == "" {
				assert.True(t, got.Success, got.Diagnostic)
				assert.Empty(t, got.Diagnostic)

				return
			}

			assert.False(t, got.Success)
			assert.Equal(t, tt.want, got.Diagnostic)
		})
	}
}

func TestMatch_Scenarios(t *testing.T) {
	t.Parallel()

	v, s := errtree.ValueError, errtree.SyntaxError

	runCases(t, []matchCase{
		{"single child", grp(ty(v)), eg("", exc(v)), ""},
		{"wrong type", grp(ty(v)), eg("", exc(s)), "'SyntaxError' is not of type 'ValueError'"},
		{"any order", grp(ty(v), ty(s)), eg("", exc(s), exc(v)), ""},
		{"flattened", grpWith(flat(), ty(v)), eg("", eg("", exc(v))), ""},
		{
			"unwrapped",
			grp(ty(v)),
			exc(v),
			"'ValueError' is not an exception group, but would match with `allow_unwrapped=True`",
		},
		{
			"identical specs",
			grp(ty(v), ty(v), ty(v), ty(errtree.TypeError)),
			eg("", exc(v), exc(v), exc(v), exc(errtree.RuntimeError)),
			"3 matched exceptions. 'RuntimeError' is not of type 'TypeError'",
		},
	})
}

func TestMatch_Groups(t *testing.T) {
	t.Parallel()

	v, s, r := errtree.ValueError, errtree.SyntaxError, errtree.RuntimeError

	runCases(t, []matchCase{
		{"message ignored", grp(ty(v)), eg("foo", exc(v)), ""},
		{"nested", grp(grp(ty(v))), eg("foo", eg("bar", exc(v))), ""},
		{
			"mixed nesting",
			grp(ty(s), grp(ty(v)), grp(ty(r))),
			eg("foo", exc(s), eg("bar", exc(v)), eg("", exc(r))),
			"",
		},
		{"subclass", grp(ty(errtree.LookupError)), eg("", exc(errtree.KeyError)), ""},
		{"base group", grp(ty(errtree.KeyboardInterrupt)), eg("", exc(errtree.KeyboardInterrupt)), ""},
		{
			"extra exception",
			grp(ty(v)),
			eg("", exc(v), exc(v)),
			"1 matched exception. Unexpected exception(s): [ValueError()]",
		},
		{
			"extra exception first",
			grp(ty(v)),
			eg("", exc(r), exc(v)),
			"1 matched exception. Unexpected exception(s): [RuntimeError()]",
		},
		{
			"missing exception",
			grp(ty(v), ty(s)),
			eg("", exc(v)),
			"1 matched exception. Too few exceptions raised, found no match for: [SyntaxError]",
		},
		{
			"one exception for two specs",
			grp(ty(v), ty(v)),
			eg("", exc(v)),
			"1 matched exception. Too few exceptions raised, found no match for: [ValueError]",
		},
		{
			"empty group",
			grp(ty(v)),
			eg(""),
			"Too few exceptions raised, found no match for: [ValueError]",
		},
		{
			"one left on each side",
			grp(ty(v), ty(errtree.TypeError)),
			eg("a", exc(v), exc(errtree.AssertionError)),
			"1 matched exception. 'AssertionError' is not of type 'TypeError'",
		},
		{
			"matcher child",
			grp(matcher(shape.OfType(errtree.TypeError))),
			eg("", exc(v)),
			"Matcher(TypeError): 'ValueError' is not of type 'TypeError'",
		},
		{
			"not a group for several children",
			grp(ty(v), ty(s)),
			exc(v),
			"'ValueError' is not an exception group",
		},
		{
			"nested group is not unwrapped",
			grp(grp(ty(v))),
			exc(v),
			"'ValueError' is not an exception group",
		},
	})
}

func TestMatch_MaximumPairing(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError

	runCases(t, []matchCase{
		{
			"specific spec declared last",
			grp(ty(v), ty(v), ty(v), matcher(shape.OfType(v), shape.Matching("foo"))),
			eg("", exc(v, "foo"), exc(v, "foo"), exc(v, "foo"), exc(v, "bar")),
			"",
		},
		{
			"broad spec declared first",
			grp(ty(errtree.Exception), ty(v)),
			eg("", exc(v), exc(errtree.TypeError)),
			"",
		},
	})
}

func TestMatch_FlattenSubgroups(t *testing.T) {
	t.Parallel()

	v, te := errtree.ValueError, errtree.TypeError

	runCases(t, []matchCase{
		{"flatten pair", grpWith(flat(), ty(v), ty(te)), eg("", eg("", exc(v), exc(te))), ""},
		{"flatten mixed", grpWith(flat(), ty(v), ty(te)), eg("", eg("", exc(v)), exc(te)), ""},
		{"flatten inside nested", grp(grpWith(flat(), ty(v))), eg("", eg("", exc(v))), ""},
		{"flatten deep", grp(grpWith(flat(), ty(v))), eg("", eg("", eg("", exc(v)))), ""},
		{
			"flatten does not unwrap",
			grpWith(flat(), ty(v)),
			exc(v),
			"'ValueError' is not an exception group, but would match with `allow_unwrapped=True`",
		},
		{
			"flatten does not unwrap nested",
			grp(grpWith(flat(), ty(v))),
			eg("", exc(v)),
			"ExceptionGroup(ValueError, flatten_subgroups=True): " +
				"'ValueError' is not an exception group, but would match with `allow_unwrapped=True`",
		},
		{
			"suggest flatten for table",
			grp(ty(v), ty(te)),
			eg("", eg("", exc(v), exc(te))),
			lines(
				"The following expected exceptions did not find a match: [ValueError, TypeError]",
				"The following raised exceptions did not find a match",
				"  ExceptionGroup('', [ValueError(), TypeError()]):",
				"    inner 'ExceptionGroup' is not of type 'ValueError'",
				"    inner 'ExceptionGroup' is not of type 'TypeError'",
				"Did you mean to use `flatten_subgroups=True`?",
			),
		},
		{
			"suggest flatten for single",
			grp(ty(v)),
			eg("", eg("", exc(v))),
			lines(
				"inner 'ExceptionGroup' is not of type 'ValueError'",
				"Did you mean to use `flatten_subgroups=True`?",
			),
		},
		{
			"no suggestion when flatten would not help",
			grp(ty(v)),
			eg("", eg("", exc(te))),
			"inner 'ExceptionGroup' is not of type 'ValueError'",
		},
		{
			"suggest flatten nested",
			grp(grp(ty(v))),
			eg("", eg("", eg("", exc(v)))),
			lines(
				"ExceptionGroup(ValueError): inner 'ExceptionGroup' is not of type 'ValueError'",
				"  Did you mean to use `flatten_subgroups=True`?",
			),
		},
		{
			"no flatten suggestion when too many",
			grp(ty(v), ty(v), ty(v), ty(v)),
			eg("", eg("", exc(v), exc(te))),
			lines(
				"The following expected exceptions did not find a match: [ValueError, ValueError, ValueError, ValueError]",
				"The following raised exceptions did not find a match",
				"  ExceptionGroup('', [ValueError(), TypeError()]):",
				"    inner 'ExceptionGroup' is not of type 'ValueError'",
				"    inner 'ExceptionGroup' is not of type 'ValueError'",
				"    inner 'ExceptionGroup' is not of type 'ValueError'",
				"    inner 'ExceptionGroup' is not of type 'ValueError'",
			),
		},
	})
}

func TestMatch_AllowUnwrapped(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError
	syntaxOrValue := shape.CheckFunc("syntax_or_value", func(n *errtree.Node) bool {
		return n.Type().IsSubtypeOf(errtree.SyntaxError) || n.Type().IsSubtypeOf(v)
	})
	fooMatcher := matcher(shape.OfType(v), shape.Matching("^foo$"))

	runCases(t, []matchCase{
		{"lone", grpWith(unwrapped(), ty(v)), exc(v), ""},
		{"lone via check", grpWith(unwrapped(), matcher(shape.Checking(syntaxOrValue))), exc(v), ""},
		{"still accepts group", grpWith(unwrapped(), ty(v)), eg("", exc(v)), ""},
		{"nested one deeper", grp(grpWith(unwrapped(), ty(v))), eg("", eg("", exc(v))), ""},
		{"nested collapsed", grp(grpWith(unwrapped(), ty(v))), eg("", exc(v)), ""},
		{"matcher lone", grpWith(unwrapped(), fooMatcher), exc(v, "foo"), ""},
		{"matcher wrapped", grpWith(unwrapped(), fooMatcher), eg("", exc(v, "foo")), ""},
		{
			"with flatten",
			grpWith([]shape.GroupOption{shape.AllowUnwrapped(), shape.FlattenSubgroups()}, ty(v)),
			eg("", eg("", exc(v))),
			"",
		},
		{
			"does not flatten",
			grpWith(unwrapped(), ty(v)),
			eg("foo", eg("bar", exc(v))),
			lines(
				"inner 'ExceptionGroup' is not of type 'ValueError'",
				"Did you mean to use `flatten_subgroups=True`?",
			),
		},
		{
			"wrong lone type",
			grpWith(unwrapped(), ty(v)),
			exc(errtree.TypeError, "this text doesn't show up"),
			"'TypeError' is not of type 'ValueError'",
		},
		{
			"wrong lone type in matcher",
			grpWith(unwrapped(), matcher(shape.OfType(v))),
			exc(errtree.TypeError),
			"Matcher(ValueError): 'TypeError' is not of type 'ValueError'",
		},
	})
}

func TestMatch_GroupPattern(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError
	matching := func(p string) []shape.GroupOption {
		return []shape.GroupOption{shape.GroupMatching(p)}
	}

	runCases(t, []matchCase{
		{"search", grpWith(matching("bar"), ty(v)), eg("bar", exc(v)), ""},
		{"anchors", grpWith(matching("^bar$"), ty(v)), eg("bar", exc(v)), ""},
		{"notes", grpWith(matching("my note"), ty(v)), eg("bar", exc(v)).WithNotes("my note"), ""},
		{"anchored notes", grpWith(matching("^bar\nmy note$"), ty(v)), eg("bar", exc(v)).WithNotes("my note"), ""},
		{
			"mismatch",
			grpWith(matching("foo"), ty(v)),
			eg("bar", exc(v)),
			"Regex pattern 'foo' did not match 'bar'",
		},
		{
			"pattern checked before children",
			grpWith(matching("foo"), ty(errtree.TypeError)),
			eg("bar", exc(v)),
			"Regex pattern 'foo' did not match 'bar'",
		},
		{
			"suggest escaping",
			grpWith(matching("h(ell)o"), ty(v)),
			eg("h(ell)o", exc(v)),
			lines(
				"Regex pattern 'h(ell)o' did not match 'h(ell)o'",
				"Did you mean to `regexp.QuoteMeta()` the pattern?",
			),
		},
		{
			"no escape suggestion when children fail",
			grpWith(matching("h(ell)o"), ty(errtree.TypeError)),
			eg("h(ell)o", exc(v)),
			"Regex pattern 'h(ell)o' did not match 'h(ell)o'",
		},
	})
}

func TestMatch_Matcher(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError
	errno5 := shape.CheckFunc("errno_is_5", func(n *errtree.Node) bool { return n.Message() == "5" })

	runCases(t, []matchCase{
		{"type", grp(matcher(shape.OfType(v))), eg("", exc(v)), ""},
		{"type and pattern", grp(matcher(shape.OfType(v), shape.Matching("foo"))), eg("", exc(v, "foo")), ""},
		{
			"pattern mismatch",
			grp(matcher(shape.OfType(v), shape.Matching("foo"))),
			eg("", exc(v, "bar")),
			"Matcher(ValueError, match='foo'): Regex pattern 'foo' did not match 'bar'",
		},
		{"pattern only", grp(matcher(shape.Matching("foo"))), eg("", exc(v, "foo")), ""},
		{
			"pattern only mismatch",
			grp(matcher(shape.Matching("foo"))),
			eg("", exc(v, "bar")),
			"Matcher(match='foo'): Regex pattern 'foo' did not match 'bar'",
		},
		{"anchored", grp(matcher(shape.OfType(v), shape.Matching("^bar$"))), eg("", exc(v, "bar")), ""},
		{
			"anchored mismatch",
			grp(matcher(shape.OfType(v), shape.Matching("^bar$"))),
			eg("", exc(v, "barr")),
			"Matcher(ValueError, match='^bar$'): Regex pattern '^bar$' did not match 'barr'",
		},
		{"notes searched", grp(matcher(shape.Matching("hint"))), eg("", exc(v, "x").WithNotes("a hint")), ""},
		{"check", grp(matcher(shape.OfType(errtree.OSError), shape.Checking(errno5))), eg("", exc(errtree.OSError, "5")), ""},
		{
			"check false",
			grp(matcher(shape.OfType(errtree.OSError), shape.Checking(errno5))),
			eg("", exc(errtree.OSError, "6")),
			"Matcher(OSError, check=errno_is_5): check did not return True",
		},
		{
			"check false nested",
			grp(grp(matcher(shape.OfType(errtree.OSError), shape.Checking(errno5)))),
			eg("", eg("", exc(errtree.OSError, "6"))),
			"ExceptionGroup(Matcher(OSError, check=errno_is_5)): " +
				"Matcher(OSError, check=errno_is_5): check did not return True",
		},
		{
			"check skipped after type mismatch",
			grp(matcher(shape.OfType(errtree.OSError), shape.Checking(errno5))),
			eg("", exc(v, "5")),
			"Matcher(OSError, check=errno_is_5): 'ValueError' is not of type 'OSError'",
		},
		{
			"suggest escaping",
			grp(matcher(shape.Matching("h(ell)o"))),
			eg("", exc(v, "h(ell)o")),
			lines(
				"Matcher(match='h(ell)o'): Regex pattern 'h(ell)o' did not match 'h(ell)o'",
				"  Did you mean to `regexp.QuoteMeta()` the pattern?",
			),
		},
	})
}

func TestMatch_GroupCheck(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError
	raised := eg("", exc(v))
	isRaised := shape.CheckFunc("is_raised", func(n *errtree.Node) bool { return n == raised })
	boom := shape.CheckFunc("boom", func(*errtree.Node) bool { panic("boom") })
	checking := func(c shape.Check) []shape.GroupOption {
		return []shape.GroupOption{shape.GroupChecking(c)}
	}

	runCases(t, []matchCase{
		{"identity", grpWith(checking(isRaised), ty(v)), raised, ""},
		{
			"other group",
			grpWith(checking(isRaised), ty(v)),
			eg("", exc(v)),
			"check is_raised did not return True",
		},
		{
			"structure first",
			grpWith(checking(isRaised), ty(errtree.TypeError)),
			raised,
			"'ValueError' is not of type 'TypeError'",
		},
		{"panic", grpWith(checking(boom), ty(v)), eg("", exc(v)), "check boom panicked: boom"},
		{
			"panic in matcher",
			grp(matcher(shape.Checking(boom))),
			eg("", exc(v)),
			"Matcher(check=boom): check boom panicked: boom",
		},
	})
}

func TestMatch_Tables(t *testing.T) {
	t.Parallel()

	v, te, re := errtree.ValueError, errtree.TypeError, errtree.RuntimeError
	never := shape.CheckFunc("never", func(*errtree.Node) bool { return false })
	fooMatcher := matcher(shape.Matching("bar"))

	runCases(t, []matchCase{
		{
			"nested groups against mixed",
			grp(grp(ty(v)), grpWith([]shape.GroupOption{shape.GroupMatching("a")}, ty(v))),
			eg("", eg("", exc(re)), exc(re)),
			lines(
				"The following expected exceptions did not find a match: "+
					"[ExceptionGroup(ValueError), ExceptionGroup(ValueError, match='a')]",
				"The following raised exceptions did not find a match",
				"  ExceptionGroup('', [RuntimeError()]):",
				"    ExceptionGroup(ValueError): 'RuntimeError' is not of type 'ValueError'",
				"    ExceptionGroup(ValueError, match='a'): Regex pattern 'a' did not match ''",
				"  RuntimeError():",
				"    ExceptionGroup(ValueError): 'RuntimeError' is not an exception group",
				"    ExceptionGroup(ValueError, match='a'): 'RuntimeError' is not an exception group",
			),
		},
		{
			"near miss",
			grp(ty(v), matcher(shape.OfType(te)), grp(ty(re)), grp(ty(v))),
			eg("a", exc(re), exc(te), exc(v, "foo"), exc(v, "bar")),
			lines(
				"2 matched exceptions.",
				"The following expected exceptions did not find a match: "+
					"[ExceptionGroup(RuntimeError), ExceptionGroup(ValueError)]",
				"The following raised exceptions did not find a match",
				"  RuntimeError():",
				"    ExceptionGroup(RuntimeError): 'RuntimeError' is not an exception group, "+
					"but would match with `allow_unwrapped=True`",
				"    ExceptionGroup(ValueError): 'RuntimeError' is not an exception group",
				"  ValueError('bar'):",
				"    ExceptionGroup(RuntimeError): 'ValueError' is not an exception group",
				"    ExceptionGroup(ValueError): 'ValueError' is not an exception group, "+
					"but would match with `allow_unwrapped=True`",
				"    It matches ValueError which was paired with ValueError('foo')",
			),
		},
		{
			"near miss only pair left",
			grp(ty(te), ty(v)),
			eg("", exc(te, "c"), exc(te, "d")),
			lines(
				"1 matched exception.",
				"The following expected exceptions did not find a match: [ValueError]",
				"The following raised exceptions did not find a match",
				"  TypeError('d'):",
				"    'TypeError' is not of type 'ValueError'",
				"    It matches TypeError which was paired with TypeError('c')",
			),
		},
		{
			"failing check",
			grp(matcher(shape.Checking(never)), ty(te)),
			eg("", exc(v, "foo"), exc(v, "bar")),
			lines(
				"The following expected exceptions did not find a match: [Matcher(check=never), TypeError]",
				"The following raised exceptions did not find a match",
				"  ValueError('foo'):",
				"    Matcher(check=never): check did not return True",
				"    'ValueError' is not of type 'TypeError'",
				"  ValueError('bar'):",
				"    Matcher(check=never): check did not return True",
				"    'ValueError' is not of type 'TypeError'",
			),
		},
		{
			"same spec and exception repeated",
			grp(fooMatcher, fooMatcher, fooMatcher),
			eg("", exc(v, "foo"), exc(v, "foo"), exc(v, "foo")),
			lines(
				"The following expected exceptions did not find a match: "+
					"[Matcher(match='bar'), Matcher(match='bar'), Matcher(match='bar')]",
				"The following raised exceptions did not find a match",
				"  ValueError('foo'):",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"  ValueError('foo'):",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"  ValueError('foo'):",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
				"    Matcher(match='bar'): Regex pattern 'bar' did not match 'foo'",
			),
		},
	})
}

func TestMatch_NestedTables(t *testing.T) {
	t.Parallel()

	v, te := errtree.ValueError, errtree.TypeError
	fooType := matcher(shape.OfType(te), shape.Matching("foo"))

	spec := grp(grp(ty(v)), grp(grp(ty(v))), grp(fooType), grp(ty(te), ty(v)))
	raised := eg("",
		exc(te, "a"),
		eg("nursery", exc(te, "b")),
		eg("nursery", exc(te, "c"), exc(te, "d")),
	)

	want := lines(
		"The following expected exceptions did not find a match: [ExceptionGroup(ValueError), "+
			"ExceptionGroup(ExceptionGroup(ValueError)), ExceptionGroup(Matcher(TypeError, match='foo')), "+
			"ExceptionGroup(TypeError, ValueError)]",
		"The following raised exceptions did not find a match",
		"  TypeError('a'):",
		"    ExceptionGroup(ValueError): 'TypeError' is not an exception group",
		"    ExceptionGroup(ExceptionGroup(ValueError)): 'TypeError' is not an exception group",
		"    ExceptionGroup(Matcher(TypeError, match='foo')): 'TypeError' is not an exception group",
		"    ExceptionGroup(TypeError, ValueError): 'TypeError' is not an exception group",
		"  ExceptionGroup('nursery', [TypeError('b')]):",
		"    ExceptionGroup(ValueError): 'TypeError' is not of type 'ValueError'",
		"    ExceptionGroup(ExceptionGroup(ValueError)): ExceptionGroup(ValueError): "+
			"'TypeError' is not an exception group",
		"    ExceptionGroup(Matcher(TypeError, match='foo')): Matcher(TypeError, match='foo'): "+
			"Regex pattern 'foo' did not match 'b'",
		"    ExceptionGroup(TypeError, ValueError): 1 matched exception. "+
			"Too few exceptions raised, found no match for: [ValueError]",
		"  ExceptionGroup('nursery', [TypeError('c'), TypeError('d')]):",
		"    ExceptionGroup(ValueError):",
		"      The following expected exceptions did not find a match: [ValueError]",
		"      The following raised exceptions did not find a match",
		"        TypeError('c'):",
		"          'TypeError' is not of type 'ValueError'",
		"        TypeError('d'):",
		"          'TypeError' is not of type 'ValueError'",
		"    ExceptionGroup(ExceptionGroup(ValueError)):",
		"      The following expected exceptions did not find a match: [ExceptionGroup(ValueError)]",
		"      The following raised exceptions did not find a match",
		"        TypeError('c'):",
		"          ExceptionGroup(ValueError): 'TypeError' is not an exception group",
		"        TypeError('d'):",
		"          ExceptionGroup(ValueError): 'TypeError' is not an exception group",
		"    ExceptionGroup(Matcher(TypeError, match='foo')):",
		"      The following expected exceptions did not find a match: [Matcher(TypeError, match='foo')]",
		"      The following raised exceptions did not find a match",
		"        TypeError('c'):",
		"          Matcher(TypeError, match='foo'): Regex pattern 'foo' did not match 'c'",
		"        TypeError('d'):",
		"          Matcher(TypeError, match='foo'): Regex pattern 'foo' did not match 'd'",
		"    ExceptionGroup(TypeError, ValueError):",
		"      1 matched exception.",
		"      The following expected exceptions did not find a match: [ValueError]",
		"      The following raised exceptions did not find a match",
		"        TypeError('d'):",
		"          'TypeError' is not of type 'ValueError'",
		"          It matches TypeError which was paired with TypeError('c')",
	)

	got := match.Match(spec, raised)

	require.False(t, got.Success)
	assert.True(t, got.Itemized)
	assert.Equal(t, want, got.Diagnostic)
}

func TestMatch_TopLevelLeafSpecs(t *testing.T) {
	t.Parallel()

	v := errtree.ValueError

	runCases(t, []matchCase{
		{"type", ty(v), exc(v), ""},
		{"type mismatch", ty(v), exc(errtree.TypeError), "'TypeError' is not of type 'ValueError'"},
		{"type against group", ty(v), eg("", exc(v)), "inner 'ExceptionGroup' is not of type 'ValueError'"},
		{"group class", ty(errtree.ExceptionGroup), eg("", exc(v)), ""},
		{"matcher", matcher(shape.Matching("^x$")), exc(v, "x"), ""},
		{"matcher mismatch", matcher(shape.Matching("^x$")), exc(v, "y"), "Regex pattern '^x$' did not match 'y'"},
	})
}

func TestMatch_NilInputs(t *testing.T) {
	t.Parallel()

	got := match.Match(grp(ty(errtree.ValueError)), nil)
	assert.Equal(t, match.Outcome{Diagnostic: "no exception was raised"}, got)

	got = match.Match(nil, exc(errtree.ValueError))
	assert.False(t, got.Success)
}

func TestOutcome_Report(t *testing.T) {
	t.Parallel()

	assert.Empty(t, match.Outcome{Success: true}.Report("prefix:"))
	assert.Equal(t, "prefix: reason", match.Outcome{Diagnostic: "reason"}.Report("prefix:"))
	assert.Equal(t, "prefix:\nline 1\nline 2",
		match.Outcome{Diagnostic: "line 1\nline 2", Itemized: true}.Report("prefix:"))
}

func TestHeadline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Raised exception group did not match:", match.Headline(grp(ty(errtree.ValueError))))
	assert.Equal(t, "Raised exception (group) did not match:",
		match.Headline(grpWith(unwrapped(), ty(errtree.ValueError))))
	assert.Equal(t, "Raised exception did not match:", match.Headline(ty(errtree.ValueError)))
	assert.Equal(t, "Raised exception did not match:", match.Headline(nil))
}

func TestEngine_WithRenderer(t *testing.T) {
	t.Parallel()

	e := match.New(match.WithRenderer(match.RendererFunc(func(n *errtree.Node) string {
		return "<" + n.TypeName() + ">"
	})))

	got := e.Match(grp(ty(errtree.ValueError)), eg("", exc(errtree.ValueError), exc(errtree.TypeError, "x")))

	assert.Equal(t, "1 matched exception. Unexpected exception(s): [<TypeError>]", got.Diagnostic)
}

type classifiedError struct {
	typ *errtree.Type
	msg string
}

func (e classifiedError) Error() string                { return e.msg }
func (e classifiedError) ExceptionType() *errtree.Type { return e.typ }

func TestMatchError(t *testing.T) {
	t.Parallel()

	v, te := errtree.ValueError, errtree.TypeError

	joined := errors.Join(classifiedError{v, "bad value"}, classifiedError{te, "bad type"})
	assert.True(t, match.MatchError(grp(ty(te), ty(v)), joined).Success)

	wrapped := fmt.Errorf("both: %w, %w", errtree.New(v, "a"), eg("inner", exc(te)))
	assert.True(t, match.MatchError(grp(ty(v), grp(ty(te))), wrapped).Success)
	assert.True(t, match.MatchError(grp(ty(v), grp(matcher(shape.OfType(te)))), wrapped).Success)

	got := match.MatchError(grp(ty(v)), errors.New("plain"))
	assert.Equal(t, "'*errors.errorString' is not an exception group", got.Diagnostic)

	assert.False(t, match.MatchError(grp(ty(v)), nil).Success)

	reg := errtree.NewRegistry()
	custom, err := reg.Define("AppError", "ValueError")
	require.NoError(t, err)

	e := match.New(match.WithRegistry(reg))
	assert.True(t, e.MatchError(grp(ty(v)), errors.Join(classifiedError{custom, "x"})).Success)
}
