// Package complexity computes cyclomatic, cognitive, and Halstead metrics
// for a chunk's AST span in a single post-order traversal (spec §4.3), and
// aggregates them into per-file violations, risk levels, and reports
// (spec §4.9).
package complexity

import (
	"math"

	"github.com/lien-dev/lien/internal/lang"
)

// Metrics holds the four Halstead-derived values plus the two structural
// complexity scores computed for one chunk.
type Metrics struct {
	Cyclomatic         int
	Cognitive          int
	HalsteadVolume     float64
	HalsteadDifficulty float64
	HalsteadEffort     float64
	HalsteadBugs       float64
}

// Compute walks chunkRoot once and derives all three metric families using
// the node-kind classification tables the language Spec provides.
func Compute(chunkRoot lang.Node, spec *lang.Spec) Metrics {
	c := &collector{tables: spec.Complexity}
	c.walk(chunkRoot, 0, "")
	h := c.halstead()
	return Metrics{
		Cyclomatic:         c.cyclomatic,
		Cognitive:          c.cognitive,
		HalsteadVolume:     h.volume,
		HalsteadDifficulty: h.difficulty,
		HalsteadEffort:     h.effort,
		HalsteadBugs:       h.bugs,
	}
}

type collector struct {
	tables lang.ComplexityTables

	cyclomatic int // set to 1 by walk's first call

	cognitive int
	operators map[string]int
	operands  map[string]int
}

func (c *collector) walk(n lang.Node, nestingLevel int, lastSiblingOp string) {
	if c.operators == nil {
		c.operators = map[string]int{}
		c.operands = map[string]int{}
		c.cyclomatic = 1
	}

	kind := n.Kind()

	// Cyclomatic: decision points always add 1; binary expressions only
	// when the operator is a logical operator.
	if c.tables.DecisionPoints[kind] {
		c.cyclomatic++
	}
	if c.tables.BinaryExpressionKinds[kind] {
		if op := binaryOperator(n); c.tables.LogicalOperators[op] {
			c.cyclomatic++
		}
	}

	// Cognitive: nesting nodes add 1+level; designated non-nesting
	// constructs (else/elif, ternary) add a flat +1 without increasing
	// the level for their children. Lambdas add +1 only when nested.
	childNesting := nestingLevel
	switch {
	case c.tables.NestingNodes[kind]:
		c.cognitive += 1 + nestingLevel
		childNesting = nestingLevel + 1
	case c.tables.NonNestingCounted[kind]:
		c.cognitive++
	case c.tables.LambdaNodes[kind]:
		if nestingLevel > 0 {
			c.cognitive++
		}
	}

	if c.tables.BinaryExpressionKinds[kind] {
		if op := binaryOperator(n); c.tables.LogicalOperators[op] {
			if op != lastSiblingOp {
				c.cognitive++
			}
			lastSiblingOp = op
		}
	}

	// Halstead: classify leaves as operator or operand tokens.
	if len(n.Children()) == 0 {
		text := n.Text()
		switch {
		case c.tables.OperatorTokenKinds[kind] || c.tables.OperatorTokenKinds[text]:
			c.operators[text]++
		case c.tables.OperandNodeKinds[kind]:
			c.operands[text]++
		}
	}

	// A nesting node's condition subtree and its else/elif children stay at
	// the node's own level; its other children are one level deeper.
	var condition lang.Node
	if c.tables.NestingNodes[kind] {
		condition = n.ChildByField("condition")
	}
	for _, child := range n.Children() {
		level := childNesting
		isCondition := !condition.IsZero() && child.Kind() == condition.Kind() &&
			child.StartLine() == condition.StartLine() && child.Text() == condition.Text()
		if c.tables.NestingNodes[kind] && (isCondition || c.tables.NonNestingCounted[child.Kind()]) {
			level = nestingLevel
		}
		c.walk(child, level, lastSiblingOp)
	}
}

type halsteadResult struct {
	volume, difficulty, effort, bugs float64
}

func (c *collector) halstead() halsteadResult {
	n1 := len(c.operators)
	n2 := len(c.operands)
	var bigN1, bigN2 int
	for _, n := range c.operators {
		bigN1 += n
	}
	for _, n := range c.operands {
		bigN2 += n
	}

	vocabulary := n1 + n2
	if vocabulary == 0 {
		return halsteadResult{}
	}

	length := bigN1 + bigN2
	volume := float64(length) * math.Log2(float64(vocabulary))

	var difficulty float64
	if n2 > 0 {
		difficulty = (float64(n1) / 2) * (float64(bigN2) / float64(n2))
	}

	effort := difficulty * volume
	bugs := volume / 3000

	return halsteadResult{volume: volume, difficulty: difficulty, effort: effort, bugs: bugs}
}

// binaryOperator reads the operator token text of a binary-expression-like
// node, trying the common "operator" field name first and falling back to
// scanning non-operand children (Python's boolean_operator has no field).
func binaryOperator(n lang.Node) string {
	if op := n.ChildByField("operator"); !op.IsZero() {
		return op.Text()
	}
	for _, child := range n.Children() {
		switch child.Text() {
		case "&&", "||", "??", "and", "or":
			return child.Text()
		}
	}
	return ""
}
