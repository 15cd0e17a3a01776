package shape

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/textutil"
)

// Sentinel parse errors.
var (
	ErrSyntax       = errors.New("syntax error")
	ErrUnknownType  = errors.New("unknown exception type")
	ErrUnknownCheck = errors.New("unknown check")
)

// Resolver supplies the names a representation may refer to.
type Resolver struct {
	// Types resolves class names. Nil means [errtree.Default].
	Types *errtree.Registry

	// Checks resolves check display tokens.
	Checks CheckSet
}

// Parse reads a canonical representation, as produced by String, back into a
// shape. Construction rules apply, so invalid shapes fail with a
// [*ConfigurationError].
func Parse(expr string, r Resolver) (Spec, error) {
	if r.Types == nil {
		r.Types = errtree.Default()
	}

	p := &parser{src: expr, res: r}

	s, err := p.parseSpec()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.eof() {
		return nil, p.errorf("unexpected %q after expression", p.src[p.pos:])
	}

	return s, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(expr string, r Resolver) Spec {
	s, err := Parse(expr, r)
	if err != nil {
		panic(err)
	}

	return s
}

type parser struct {
	src string
	pos int
	res Resolver
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpaceByte(p.src[p.pos]) {
		p.pos++
	}
}

func isSpaceByte(c byte) bool {
	return c < utf8.RuneSelf && unicode.IsSpace(rune(c))
}

func (p *parser) consume(c byte) bool {
	p.skipSpace()

	if p.peek() == c {
		p.pos++

		return true
	}

	return false
}

// isNameByte reports whether c continues a class name. Multi-byte runes are
// left to the registry lookup.
func isNameByte(c byte) bool {
	return c >= utf8.RuneSelf || errtree.IsNameRune(rune(c))
}

func (p *parser) name() string {
	p.skipSpace()

	start := p.pos
	for !p.eof() && isNameByte(p.src[p.pos]) {
		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *parser) parseSpec() (Spec, error) {
	start := p.pos
	name := p.name()

	if name == "" {
		return nil, p.errorf("expected exception type, Matcher or group")
	}

	if !p.consume('(') {
		return p.resolveType(name, start)
	}

	switch name {
	case matcherToken:
		return p.parseMatcher()
	case exceptionGroupToken, baseExceptionGroupToken:
		return p.parseGroup()
	default:
		return nil, p.errorf("%s is not a shape constructor", name)
	}
}

func (p *parser) resolveType(name string, at int) (*TypeSpec, error) {
	t, ok := p.res.Types.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w at offset %d: %s", ErrUnknownType, at, name)
	}

	return Type(t)
}

// keyword reports whether the next token is "name=" and consumes it.
func (p *parser) keyword() (string, bool) {
	save := p.pos
	key := p.name()

	if key != "" && p.consume('=') {
		return key, true
	}

	p.pos = save

	return "", false
}

func (p *parser) parseMatcher() (Spec, error) {
	var opts []MatcherOption

	first := true

	for !p.consume(')') {
		if !first && !p.consume(',') {
			return nil, p.errorf("expected ',' or ')' in Matcher")
		}

		key, isKeyword := p.keyword()

		switch {
		case !isKeyword && first:
			start := p.pos

			t, err := p.resolveType(p.name(), start)
			if err != nil {
				return nil, err
			}

			opts = append(opts, OfType(t.Type()))
		case key == typeKey:
			start := p.pos

			t, err := p.resolveType(p.name(), start)
			if err != nil {
				return nil, err
			}

			opts = append(opts, OfType(t.Type()))
		case key == matchKey:
			pattern, err := p.quoted()
			if err != nil {
				return nil, err
			}

			opts = append(opts, Matching(pattern))
		case key == checkKey:
			check, err := p.check()
			if err != nil {
				return nil, err
			}

			opts = append(opts, Checking(check))
		default:
			return nil, p.errorf("unexpected Matcher argument %q", key)
		}

		first = false
	}

	return Matcher(opts...)
}

func (p *parser) parseGroup() (Spec, error) {
	var (
		children []Spec
		opts     []GroupOption
	)

	first := true

	for !p.consume(')') {
		if !first && !p.consume(',') {
			return nil, p.errorf("expected ',' or ')' in group")
		}

		first = false

		key, isKeyword := p.keyword()
		if !isKeyword {
			if len(opts) > 0 {
				return nil, p.errorf("expected exception after keyword argument")
			}

			child, err := p.parseSpec()
			if err != nil {
				return nil, err
			}

			children = append(children, child)

			continue
		}

		opt, err := p.groupOption(key)
		if err != nil {
			return nil, err
		}

		opts = append(opts, opt)
	}

	return Group(children, opts...)
}

func (p *parser) groupOption(key string) (GroupOption, error) {
	switch key {
	case flattenKey, unwrappedKey:
		on, err := p.boolean()
		if err != nil {
			return nil, err
		}

		if key == flattenKey {
			return setFlatten(on), nil
		}

		return setUnwrapped(on), nil
	case matchKey:
		pattern, err := p.quoted()
		if err != nil {
			return nil, err
		}

		return GroupMatching(pattern), nil
	case checkKey:
		check, err := p.check()
		if err != nil {
			return nil, err
		}

		return GroupChecking(check), nil
	default:
		return nil, p.errorf("unexpected group argument %q", key)
	}
}

func (p *parser) boolean() (bool, error) {
	switch value := p.name(); value {
	case trueToken:
		return true, nil
	case falseToken:
		return false, nil
	default:
		return false, p.errorf("expected True or False, got %q", value)
	}
}

func (p *parser) quoted() (string, error) {
	p.skipSpace()

	if p.peek() != '\'' {
		return "", p.errorf("expected quoted string")
	}

	start := p.pos
	p.pos++

	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '\'':
			p.pos++

			text, err := textutil.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", p.errorf("%v", err)
			}

			return text, nil
		default:
			p.pos++
		}
	}

	return "", p.errorf("unterminated string")
}

// check reads a display token up to the next top-level ',' or ')'.
func (p *parser) check() (Check, error) {
	p.skipSpace()

	start := p.pos
	depth := 0

	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]

		switch c {
		case '(', '[', '<', '{':
			depth++
		case ']', '>', '}':
			depth--
		case ')':
			if depth == 0 {
				return p.lookupCheck(start)
			}

			depth--
		case ',':
			if depth == 0 {
				return p.lookupCheck(start)
			}
		}
	}

	return nil, p.errorf("unterminated check")
}

func (p *parser) lookupCheck(start int) (Check, error) {
	token := strings.TrimSpace(p.src[start:p.pos])

	check, ok := p.res.Checks[token]
	if !ok {
		return nil, fmt.Errorf("%w at offset %d: %s", ErrUnknownCheck, start, token)
	}

	return check, nil
}
