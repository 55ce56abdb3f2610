package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/rules"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Evaluator is a small, dependency-free rule evaluator for fieldset
// visibility predicates.
//
// Supported forms:
// - truthiness: `hasPartner`
// - comparisons: `orgType == "charity"`, `beneficiaries != 0`
// - set membership: `orgSubType in ["cio", "scio"]`
// - boolean composition: `a == true && (b in ["x"] || !c)`
//
// Identifiers resolve against visibility.Context.Answers with dot-path
// traversal, or against Extras via the `extras.` prefix. A missing answer is
// falsy and never an error, so hiding a branch can never fail a render.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(fieldName, rule string, ctx visibility.Context) (bool, error) {
	_ = fieldName
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return true, nil
	}

	node, err := parseExpression(tokens)
	if err != nil {
		return false, err
	}
	return node.eval(ctx), nil
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenEq
	tokenNeq
	tokenIn
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '[':
			tokens = append(tokens, token{kind: tokenLBracket, raw: "["})
			i++
		case ch == ']':
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]"})
			i++
		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokenNot, raw: "!"})
				i++
			}
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("visibility/expr: unexpected '='; use '=='")
			}
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			i += 2
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, errors.New("visibility/expr: unexpected '&'; use '&&'")
			}
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, errors.New("visibility/expr: unexpected '|'; use '||'")
			}
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			i += 2
		case ch == '"' || ch == '\'':
			value, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = next
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()[]!=&|,", rune(input[i])) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			case "in":
				tokens = append(tokens, token{kind: tokenIn, raw: "in"})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
				}
			}
		}
	}
	return tokens, nil
}

func scanString(input string, start int) (value string, next int, err error) {
	quote := input[start]
	i := start + 1
	var out strings.Builder
	for i < len(input) {
		ch := input[i]
		if ch == '\\' && i+1 < len(input) {
			out.WriteByte(input[i+1])
			i += 2
			continue
		}
		if ch == quote {
			return out.String(), i + 1, nil
		}
		out.WriteByte(ch)
		i++
	}
	return "", 0, errors.New("visibility/expr: unterminated string literal")
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type exprNode interface {
	eval(ctx visibility.Context) bool
}

type exprOr struct{ left, right exprNode }

func (n exprOr) eval(ctx visibility.Context) bool {
	return n.left.eval(ctx) || n.right.eval(ctx)
}

type exprAnd struct{ left, right exprNode }

func (n exprAnd) eval(ctx visibility.Context) bool {
	return n.left.eval(ctx) && n.right.eval(ctx)
}

type exprNot struct{ inner exprNode }

func (n exprNot) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type exprTruthy struct{ identifier string }

func (n exprTruthy) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.identifier)
	return ok && truthy(value)
}

type exprCompare struct {
	identifier string
	negate     bool
	literal    string
}

func (n exprCompare) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		// Missing answers only satisfy inequality.
		return n.negate
	}
	equal := coerceString(value) == n.literal
	if numWant, errWant := strconv.ParseFloat(n.literal, 64); errWant == nil {
		if numGot, okGot := coerceNumber(value); okGot {
			equal = numGot == numWant
		}
	}
	if n.negate {
		return !equal
	}
	return equal
}

type exprIn struct {
	identifier string
	members    []string
}

func (n exprIn) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false
	}
	got := coerceString(value)
	for _, member := range n.members {
		if member == got {
			return true
		}
	}
	return false
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	if stream.match(tokenEq) {
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return exprCompare{identifier: ident.raw, literal: lit}, nil
	}
	if stream.match(tokenNeq) {
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return exprCompare{identifier: ident.raw, negate: true, literal: lit}, nil
	}
	if stream.match(tokenIn) {
		members, err := stream.consumeSet()
		if err != nil {
			return nil, err
		}
		return exprIn{identifier: ident.raw, members: members}, nil
	}

	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", errors.New("visibility/expr: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString, tokenNumber, tokenBool, tokenIdentifier:
		return tok.raw, nil
	default:
		return "", fmt.Errorf("visibility/expr: expected literal, got %q", tok.raw)
	}
}

func (s *tokenStream) consumeSet() ([]string, error) {
	if !s.match(tokenLBracket) {
		return nil, errors.New("visibility/expr: 'in' requires a [...] set")
	}
	var members []string
	for {
		if s.match(tokenRBracket) {
			return members, nil
		}
		if len(members) > 0 && !s.match(tokenComma) {
			return nil, errors.New("visibility/expr: expected ',' in set")
		}
		member, err := s.consumeLiteral()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	if strings.HasPrefix(strings.ToLower(key), "extras.") {
		path := strings.TrimSpace(key[len("extras."):])
		value, ok := rules.Document(ctx.Extras).Get(path)
		return value, ok
	}
	value, ok := ctx.Answers.Get(key)
	if !ok || rules.IsEmpty(value) {
		return nil, false
	}
	return value, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != "" && !strings.EqualFold(v, "false") && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return !rules.IsEmpty(value)
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}
