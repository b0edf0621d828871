package odata

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/operators"
)

// OrderItem is one parsed $orderby key.
type OrderItem struct {
	Field      string
	Descending bool
}

type parser struct {
	tokens []Token
	pos    int
}

func newParser(text string) (*parser, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

// ParseFilter parses a $filter value.
func ParseFilter(text string) (e.Visitable, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseOrderBy parses a $orderby value such as "year desc,title".
func ParseOrderBy(text string) ([]OrderItem, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	var items []OrderItem
	for {
		field := p.peek()
		if err := p.expect(TokenIdentifier); err != nil {
			return nil, err
		}
		item := OrderItem{Field: field.Value}
		if p.peekKeyword("desc") {
			item.Descending = true
			p.pos++
		} else if p.peekKeyword("asc") {
			p.pos++
		}
		items = append(items, item)
		if p.peek().Type != TokenComma {
			break
		}
		p.pos++
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseSelect parses a $select value such as "id,title".
func ParseSelect(text string) ([]string, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	var fields []string
	for {
		field := p.peek()
		if err := p.expect(TokenIdentifier); err != nil {
			return nil, err
		}
		fields = append(fields, field.Value)
		if p.peek().Type != TokenComma {
			break
		}
		p.pos++
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekKeyword(keyword string) bool {
	t := p.peek()
	return t.Type == TokenIdentifier && t.Value == keyword
}

func (p *parser) expect(tt TokenType) error {
	t := p.peek()
	if t.Type != tt {
		return p.errorf(t, "expected %s, got %s", tt, t)
	}
	p.pos++
	return nil
}

func (p *parser) errorf(t Token, format string, args ...any) error {
	return &SyntaxError{Position: t.Position, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (e.Visitable, error) {
	return p.parseLeftAssoc(p.parseAnd, operators.OperatorOr)
}

func (p *parser) parseAnd() (e.Visitable, error) {
	return p.parseLeftAssoc(p.parseComparison, operators.OperatorAnd)
}

func (p *parser) parseComparison() (e.Visitable, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	op, ok := operators.Lookup(t.Value)
	if t.Type != TokenIdentifier || !ok || !op.IsComparison() {
		return left, nil
	}
	p.pos++
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return e.NewInfixNode(left, op, right), nil
}

func (p *parser) parseAdditive() (e.Visitable, error) {
	return p.parseLeftAssoc(p.parseMultiplicative, operators.OperatorAdd, operators.OperatorSub)
}

func (p *parser) parseMultiplicative() (e.Visitable, error) {
	return p.parseLeftAssoc(p.parseUnary, operators.OperatorMul, operators.OperatorDiv, operators.OperatorMod)
}

func (p *parser) parseLeftAssoc(operand func() (e.Visitable, error), ops ...operators.Operator) (e.Visitable, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator(ops)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = e.NewInfixNode(left, op, right)
	}
}

func (p *parser) matchOperator(ops []operators.Operator) (operators.Operator, bool) {
	t := p.peek()
	if t.Type != TokenIdentifier {
		return "", false
	}
	for _, op := range ops {
		if t.Value == string(op) {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseUnary() (e.Visitable, error) {
	t := p.peek()
	switch {
	case p.peekKeyword("not"):
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return e.Not(operand), nil
	case t.Type == TokenMinus:
		p.pos++
		if next := p.peek(); next.Type == TokenNumber {
			p.pos++
			value, err := parseNumber("-"+next.Value, next)
			if err != nil {
				return nil, err
			}
			return e.Value(value), nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return e.Negate(operand), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (e.Visitable, error) {
	t := p.peek()
	switch t.Type {
	case TokenLParen:
		p.pos++
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return node, nil
	case TokenString:
		p.pos++
		return e.Value(strings.ReplaceAll(t.Value[1:len(t.Value)-1], "''", "'")), nil
	case TokenNumber:
		p.pos++
		value, err := parseNumber(t.Value, t)
		if err != nil {
			return nil, err
		}
		return e.Value(value), nil
	case TokenCast:
		p.pos++
		value, err := parseCast(t)
		if err != nil {
			return nil, err
		}
		return e.Value(value), nil
	case TokenIdentifier:
		p.pos++
		switch t.Value {
		case "true":
			return e.Value(true), nil
		case "false":
			return e.Value(false), nil
		case "null":
			return e.Value(nil), nil
		}
		if p.peek().Type == TokenLParen {
			return p.parseCall(t)
		}
		return e.Field(t.Value), nil
	}
	return nil, p.errorf(t, "unexpected %s", t)
}

func (p *parser) parseCall(name Token) (e.Visitable, error) {
	p.pos++ // (
	var args []e.Visitable
	if p.peek().Type != TokenRParen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != TokenComma {
				break
			}
			p.pos++
		}
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return e.Call(e.Function(strings.ToLower(name.Value)), args...), nil
}

func parseNumber(text string, t Token) (any, error) {
	body, suffix := text, byte(0)
	if last := text[len(text)-1]; strings.IndexByte("fFmMlLdD", last) >= 0 {
		body, suffix = text[:len(text)-1], last|0x20
	}
	switch suffix {
	case 'f':
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return nil, wrapNumber(err, text, t)
		}
		return float32(f), nil
	case 'd':
		return parseFloat64(body, t)
	case 'm':
		d, err := decimal.NewFromString(body)
		if err != nil {
			return nil, wrapNumber(err, text, t)
		}
		return d, nil
	case 'l':
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return nil, wrapNumber(err, text, t)
		}
		return n, nil
	}
	if strings.ContainsAny(body, ".eE") {
		return parseFloat64(body, t)
	}
	n, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return nil, wrapNumber(err, text, t)
	}
	if n < math.MinInt || n > math.MaxInt {
		return n, nil
	}
	return int(n), nil
}

func parseFloat64(body string, t Token) (float64, error) {
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, wrapNumber(err, body, t)
	}
	return f, nil
}

func wrapNumber(err error, text string, t Token) error {
	return errors.Wrap(&SyntaxError{Position: t.Position, Message: fmt.Sprintf("bad number %q", text)}, err.Error())
}

var castPattern = regexp.MustCompile(`^cast\(\s*([^,()'\s]+)\s*,\s*(Edm\.[A-Za-z]+)\s*\)$`)

// parseCast decodes the typed literals the serializer emits. Date/time
// values with an offset are normalized to UTC.
func parseCast(t Token) (any, error) {
	m := castPattern.FindStringSubmatch(t.Value)
	if m == nil {
		return nil, &SyntaxError{Position: t.Position, Message: fmt.Sprintf("malformed cast %q", t.Value)}
	}
	raw, edmType := m[1], m[2]
	var (
		value any
		err   error
	)
	switch edmType {
	case "Edm.DateTimeOffset":
		var ts time.Time
		ts, err = time.Parse(time.RFC3339Nano, raw)
		value = ts.UTC()
	case "Edm.Date":
		value, err = e.ParseDate(raw)
	case "Edm.TimeOfDay":
		value, err = e.ParseTimeOfDay(raw)
	case "Edm.Guid":
		value, err = uuid.Parse(raw)
	default:
		return nil, &SyntaxError{Position: t.Position, Message: fmt.Sprintf("unsupported cast type %s", edmType)}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cast at position %d", t.Position)
	}
	return value, nil
}
