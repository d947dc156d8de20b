package frontend

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/domainlens-mcp/internal/resolver"
)

// Type-expression parse errors.
var (
	ErrEmptyTypeExpr      = errors.New("empty type expression")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrUnterminatedParams = errors.New("unterminated type argument list")
)

var primitiveNames = map[string]struct{}{
	"void": {}, "boolean": {}, "byte": {}, "short": {}, "int": {},
	"long": {}, "float": {}, "double": {}, "char": {},
}

// ParseTypeExpr parses a source-level type expression into a mirror tree.
//
// Supported forms: primitives and void, declared types (qualified or simple)
// with optional type arguments, array suffixes, wildcards with an optional
// extends/super bound, and single-letter type variables.
func ParseTypeExpr(expr string) (*resolver.Mirror, error) {
	p := &typeExprParser{input: expr}
	p.skipSpace()
	if p.eof() {
		return nil, ErrEmptyTypeExpr
	}
	m, err := p.parseType()
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("parse type %q: %w at offset %d", expr, ErrUnexpectedToken, p.pos)
	}
	return m, nil
}

type typeExprParser struct {
	input string
	pos   int
}

func (p *typeExprParser) eof() bool { return p.pos >= len(p.input) }

func (p *typeExprParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeExprParser) skipSpace() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// parseType parses one type, including any trailing array suffixes.
func (p *typeExprParser) parseType() (*resolver.Mirror, error) {
	p.skipSpace()

	var m *resolver.Mirror
	var err error
	if p.peek() == '?' {
		m, err = p.parseWildcard()
	} else {
		m, err = p.parseNamed()
	}
	if err != nil {
		return nil, err
	}

	for p.hasArraySuffix() {
		p.pos += 2
		m = &resolver.Mirror{Kind: resolver.MirrorKindArray, Component: m}
	}
	return m, nil
}

func (p *typeExprParser) hasArraySuffix() bool {
	p.skipSpace()
	return p.pos+1 < len(p.input) && p.input[p.pos] == '[' && p.input[p.pos+1] == ']'
}

func (p *typeExprParser) parseWildcard() (*resolver.Mirror, error) {
	p.pos++ // consume '?'
	p.skipSpace()

	m := &resolver.Mirror{Kind: resolver.MirrorKindWildcard}
	switch {
	case p.consumeKeyword("extends"):
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		m.UpperBound = bound
	case p.consumeKeyword("super"):
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		m.LowerBound = bound
	}
	return m, nil
}

func (p *typeExprParser) consumeKeyword(word string) bool {
	p.skipSpace()
	if !strings.HasPrefix(p.input[p.pos:], word) {
		return false
	}
	end := p.pos + len(word)
	if end < len(p.input) && isIdentByte(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

func (p *typeExprParser) parseNamed() (*resolver.Mirror, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, ok := primitiveNames[name]; ok {
		kind := resolver.MirrorKindPrimitive
		if name == "void" {
			kind = resolver.MirrorKindVoid
		}
		return &resolver.Mirror{Kind: kind, Name: name}, nil
	}

	if isTypeVariableName(name) {
		return &resolver.Mirror{Kind: resolver.MirrorKindTypeVariable, Name: name}, nil
	}

	m := &resolver.Mirror{Kind: resolver.MirrorKindDeclared, Name: name}
	p.skipSpace()
	if p.peek() == '<' {
		args, err := p.parseTypeArguments()
		if err != nil {
			return nil, err
		}
		m.TypeArgs = args
	}
	return m, nil
}

func (p *typeExprParser) parseTypeArguments() ([]*resolver.Mirror, error) {
	p.pos++ // consume '<'
	var args []*resolver.Mirror
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, ErrUnterminatedParams
		}
	}
}

func (p *typeExprParser) parseName() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && (isIdentByte(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("%w at offset %d", ErrUnexpectedToken, p.pos)
	}
	return p.input[start:p.pos], nil
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isTypeVariableName recognizes the single-uppercase-letter convention (T, E, K,
// V). Anything longer is a declared type name.
func isTypeVariableName(name string) bool {
	return len(name) == 1 && unicode.IsUpper(rune(name[0]))
}
