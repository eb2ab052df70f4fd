package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluator parses conditions with optional custom operators.
type Evaluator struct {
	customOps map[string]BinaryOp
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCustomOperator registers a word operator such as "matches".
// Built-in operator names cannot be overridden.
func WithCustomOperator(name string, fn BinaryOp) Option {
	return func(e *Evaluator) {
		if _, builtin := builtinOps[name]; builtin || fn == nil {
			return
		}
		if e.customOps == nil {
			e.customOps = make(map[string]BinaryOp)
		}
		e.customOps[name] = fn
	}
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse compiles src. An empty or blank src yields a condition that is
// always true.
func (e *Evaluator) Parse(src string) (Condition, error) {
	if strings.TrimSpace(src) == "" {
		return always{}, nil
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks, ops: e.customOps}
	c, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t)
	}
	return c, nil
}

// Evaluate parses and evaluates src in one step.
func (e *Evaluator) Evaluate(src string, vars map[string]any) (bool, error) {
	c, err := e.Parse(src)
	if err != nil {
		return false, err
	}
	return c.Eval(vars), nil
}

// Parse compiles src with the default evaluator.
func Parse(src string) (Condition, error) {
	return New().Parse(src)
}

// Eval parses and evaluates src with the default evaluator.
func Eval(src string, vars map[string]any) (bool, error) {
	return New().Evaluate(src, vars)
}

type parser struct {
	src  string
	toks []token
	pos  int
	ops  map[string]BinaryOp
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &ParseError{Expr: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orCond{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Condition, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andCond{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Condition, error) {
	if p.peek().kind == tokNot {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notCond{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Condition, error) {
	if p.peek().kind == tokLParen {
		open := p.next()
		c, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf(open, "unclosed '('")
		}
		p.next()
		return c, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	switch {
	case t.kind == tokOp:
		p.next()
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return compareCond{left: left, right: right, op: t.text, fn: builtinOps[t.text]}, nil
	case t.kind == tokIdent && p.ops[t.text] != nil:
		p.next()
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return compareCond{left: left, right: right, op: t.text, fn: p.ops[t.text]}, nil
	}
	return truthCond{value: left}, nil
}

func (p *parser) parseOperand() (operand, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return operand{literal: t.text}, nil
	case tokNumber:
		if i, err := strconv.ParseInt(t.text, 10, 64); err == nil {
			return operand{literal: i}, nil
		}
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return operand{}, p.errorf(t, "invalid number %q", t.text)
		}
		return operand{literal: f}, nil
	case tokIdent:
		switch strings.ToLower(t.text) {
		case "true":
			return operand{literal: true}, nil
		case "false":
			return operand{literal: false}, nil
		case "null", "nil":
			return operand{literal: nil}, nil
		}
		return operand{ident: t.text, isIdent: true}, nil
	}
	return operand{}, p.errorf(t, "expected value, got %s", t)
}
