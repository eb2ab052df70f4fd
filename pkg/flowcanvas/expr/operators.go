package expr

import (
	"fmt"
	"strings"
)

// BinaryOp compares two resolved operands.
type BinaryOp func(left, right any) bool

var builtinOps = map[string]BinaryOp{
	"==":       func(l, r any) bool { return format(l) == format(r) },
	"!=":       func(l, r any) bool { return format(l) != format(r) },
	"<":        func(l, r any) bool { return ToFloat64(l) < ToFloat64(r) },
	">":        func(l, r any) bool { return ToFloat64(l) > ToFloat64(r) },
	"<=":       func(l, r any) bool { return ToFloat64(l) <= ToFloat64(r) },
	">=":       func(l, r any) bool { return ToFloat64(l) >= ToFloat64(r) },
	"contains": func(l, r any) bool { return strings.Contains(format(l), format(r)) },
}

// Compare compares two values using the named built-in operator.
// Returns an error for unknown operators.
func Compare(left, right any, op string) (bool, error) {
	fn, ok := builtinOps[op]
	if !ok {
		return false, fmt.Errorf("unknown operator: %s", op)
	}
	return fn(left, right), nil
}
