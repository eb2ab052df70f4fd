package expr

import (
	"strconv"
	"strings"
)

// Condition is a parsed boolean expression.
type Condition interface {
	// Eval evaluates the condition against vars.
	Eval(vars map[string]any) bool

	// String renders the condition in normalized form.
	String() string
}

type always struct{}

func (always) Eval(map[string]any) bool { return true }
func (always) String() string            { return "true" }

type orCond struct{ left, right Condition }

func (c orCond) Eval(vars map[string]any) bool {
	return c.left.Eval(vars) || c.right.Eval(vars)
}

func (c orCond) String() string { return "(" + c.left.String() + " or " + c.right.String() + ")" }

type andCond struct{ left, right Condition }

func (c andCond) Eval(vars map[string]any) bool {
	return c.left.Eval(vars) && c.right.Eval(vars)
}

func (c andCond) String() string { return "(" + c.left.String() + " and " + c.right.String() + ")" }

type notCond struct{ inner Condition }

func (c notCond) Eval(vars map[string]any) bool { return !c.inner.Eval(vars) }
func (c notCond) String() string                { return "not " + c.inner.String() }

type compareCond struct {
	left, right operand
	op          string
	fn          BinaryOp
}

func (c compareCond) Eval(vars map[string]any) bool {
	return c.fn(c.left.resolve(vars), c.right.resolve(vars))
}

func (c compareCond) String() string {
	return c.left.String() + " " + c.op + " " + c.right.String()
}

type truthCond struct{ value operand }

func (c truthCond) Eval(vars map[string]any) bool { return IsTruthy(c.value.resolve(vars)) }
func (c truthCond) String() string                { return c.value.String() }

// operand is a literal or an identifier.
type operand struct {
	ident   string
	literal any
	isIdent bool
}

func (o operand) resolve(vars map[string]any) any {
	if !o.isIdent {
		return o.literal
	}
	v, _ := Lookup(o.ident, vars)
	return v
}

func (o operand) String() string {
	if o.isIdent {
		return o.ident
	}
	switch v := o.literal.(type) {
	case nil:
		return "null"
	case string:
		if strings.Contains(v, "'") {
			return `"` + v + `"`
		}
		return "'" + v + "'"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return format(v)
	}
}
