/*
Package expr parses and evaluates edge conditions.

The workflow store keeps an edge's condition as plain text. The simulator
parses it here and follows the edge only when it evaluates true against
the variables of the run (the user input and the outputs of nodes that
have already executed).

# Syntax

	<or>      := <and> { ('or' | '||') <and> }
	<and>     := <unary> { ('and' | '&&') <unary> }
	<unary>   := ('not' | '!') <unary> | <primary>
	<primary> := '(' <or> ')' | <operand> [ <op> <operand> ]
	<op>      := '==' | '!=' | '<' | '>' | '<=' | '>=' | 'contains' | custom
	<operand> := 'string' | "string" | number | true | false | null | identifier

Identifiers are looked up in the vars map. A dotted identifier such as
node.output first tries the literal key "node.output", then walks nested
maps. Identifiers that resolve to nothing evaluate to nil.

# Operators

== and != compare the formatted values, so 5 == '5' holds. The ordering
operators compare numerically; values that are not numbers count as 0.
contains tests for a substring.

# Truthiness

An operand on its own is truthy unless it is nil, false, an empty string
or a zero number.

# Examples

	c, err := expr.Parse("intent == 'support' and confidence >= 0.8")
	if err != nil {
		return err
	}
	c.Eval(map[string]any{"intent": "support", "confidence": 0.93}) // true

An empty condition parses to a condition that is always true.
*/
package expr
