package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

func TestString_Canonical(t *testing.T) {
	t.Parallel()

	isBool := shape.CheckFunc("bool", func(*errtree.Node) bool { return true })

	tests := []struct {
		name string
		spec shape.Spec
		want string
	}{
		{"type", typ(errtree.ValueError), "ValueError"},
		{"matcher type", shape.MustMatcher(shape.OfType(errtree.ValueError)), "Matcher(ValueError)"},
		{"matcher match", shape.MustMatcher(shape.Matching("[a-z]")), "Matcher(match='[a-z]')"},
		{
			"matcher all",
			shape.MustMatcher(shape.OfType(errtree.ValueError), shape.Matching("re"), shape.Checking(isBool)),
			"Matcher(ValueError, match='re', check=bool)",
		},
		{"group", shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}), "ExceptionGroup(ValueError)"},
		{
			"group of two",
			shape.MustGroup([]shape.Spec{typ(errtree.ValueError), typ(errtree.ValueError)}),
			"ExceptionGroup(ValueError, ValueError)",
		},
		{
			"nested",
			shape.MustGroup([]shape.Spec{shape.MustGroup([]shape.Spec{typ(errtree.ValueError)})}),
			"ExceptionGroup(ExceptionGroup(ValueError))",
		},
		{
			"group of matcher",
			shape.MustGroup([]shape.Spec{shape.MustMatcher(shape.OfType(errtree.ValueError), shape.Matching("my_str"))}),
			"ExceptionGroup(Matcher(ValueError, match='my_str'))",
		},
		{"base", shape.MustGroup([]shape.Spec{typ(errtree.KeyboardInterrupt)}), "BaseExceptionGroup(KeyboardInterrupt)"},
		{
			"base via matcher",
			shape.MustGroup([]shape.Spec{shape.MustMatcher(shape.OfType(errtree.KeyboardInterrupt))}),
			"BaseExceptionGroup(Matcher(KeyboardInterrupt))",
		},
		{
			"base propagates up",
			shape.MustGroup([]shape.Spec{shape.MustGroup([]shape.Spec{typ(errtree.KeyboardInterrupt)})}),
			"BaseExceptionGroup(BaseExceptionGroup(KeyboardInterrupt))",
		},
		{
			"base does not propagate down",
			shape.MustGroup([]shape.Spec{
				shape.MustGroup([]shape.Spec{typ(errtree.KeyboardInterrupt)}),
				shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}),
			}),
			"BaseExceptionGroup(BaseExceptionGroup(KeyboardInterrupt), ExceptionGroup(ValueError))",
		},
		{
			"options",
			shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}, shape.FlattenSubgroups(), shape.AllowUnwrapped()),
			"ExceptionGroup(ValueError, flatten_subgroups=True, allow_unwrapped=True)",
		},
		{
			"group match and check",
			shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}, shape.GroupMatching("[a-z]"), shape.GroupChecking(isBool)),
			"ExceptionGroup(ValueError, match='[a-z]', check=bool)",
		},
		{
			"quoted pattern",
			shape.MustMatcher(shape.Matching("it's\n")),
			`Matcher(match='it\'s\n')`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.spec.String())
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	check := shape.CheckFunc("c", func(*errtree.Node) bool { return true })
	sameName := shape.CheckFunc("c", func(*errtree.Node) bool { return false })
	other := shape.CheckFunc("d", func(*errtree.Node) bool { return true })

	group := func(opts ...shape.GroupOption) shape.Spec {
		return shape.MustGroup([]shape.Spec{typ(errtree.ValueError), shape.MustMatcher(shape.Matching("x"))}, opts...)
	}

	assert.True(t, shape.Equal(typ(errtree.ValueError), typ(errtree.ValueError)))
	assert.False(t, shape.Equal(typ(errtree.ValueError), typ(errtree.TypeError)))
	assert.False(t, shape.Equal(typ(errtree.ValueError), shape.MustMatcher(shape.OfType(errtree.ValueError))))
	assert.True(t, shape.Equal(
		shape.MustMatcher(shape.Checking(check)),
		shape.MustMatcher(shape.Checking(sameName)),
	))
	assert.False(t, shape.Equal(
		shape.MustMatcher(shape.Checking(check)),
		shape.MustMatcher(shape.Checking(other)),
	))
	assert.False(t, shape.Equal(shape.MustMatcher(shape.Matching("x")), shape.MustMatcher(shape.Matching("y"))))
	assert.True(t, shape.Equal(group(), group()))
	assert.False(t, shape.Equal(group(), group(shape.GroupMatching("x"))))
	assert.False(t, shape.Equal(group(shape.GroupChecking(check)), group()))
	assert.False(t, shape.Equal(
		shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}),
		shape.MustGroup([]shape.Spec{typ(errtree.ValueError)}, shape.FlattenSubgroups()),
	))
	assert.False(t, shape.Equal(group(), shape.MustGroup([]shape.Spec{typ(errtree.ValueError)})))
	assert.True(t, shape.Equal(nil, nil))
	assert.False(t, shape.Equal(nil, typ(errtree.ValueError)))
}

func TestString_CustomNamesRoundTrip(t *testing.T) {
	t.Parallel()

	reg := errtree.NewRegistry()

	for _, name := range []string{"AppError", "pkg.Err[int]", "*fs.PathError", "Fehlerà", "ÜberError"} {
		custom, err := reg.Define(name, "ValueError")
		require.NoError(t, err, name)

		spec := shape.MustGroup([]shape.Spec{
			typ(custom),
			shape.MustMatcher(shape.OfType(custom), shape.Matching("x")),
		})

		back, err := shape.Parse(spec.String(), shape.Resolver{Types: reg})
		require.NoError(t, err, name)
		assert.True(t, shape.Equal(spec, back), name)
	}
}

func TestType_UnrepresentableNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "My Error", "Bad,Name", "Call()", "a=b", "It's", `Quo"te`, "Tab\tError"} {
		custom := errtree.NewType(name, errtree.Exception)

		_, err := shape.Type(custom)
		require.ErrorIs(t, err, shape.ErrInvalidTypeName, name)

		var cfgErr *shape.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)

		_, err = shape.Matcher(shape.OfType(custom))
		require.ErrorIs(t, err, shape.ErrInvalidTypeName, name)
	}
}
