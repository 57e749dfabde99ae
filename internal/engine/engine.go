// Package engine holds the calculator's evaluation state: the running
// accumulator, the pending operator awaiting its right-hand side, and the
// operator/operand pair remembered for repeated equals. There is no
// expression parser; chained input evaluates strictly left to right by
// collapsing the pending operation whenever a new operator or equals
// arrives.
package engine

import "deskcalc/internal/arith"

// Operator is one of the four binary operations. The zero value means no
// operator.
type Operator int

const (
	None Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// Glyph returns the operator's display symbol.
func (op Operator) Glyph() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "−"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	}
	return ""
}

func (op Operator) apply(a, b arith.Value) (arith.Value, error) {
	switch op {
	case Add:
		return a.Add(b), nil
	case Subtract:
		return a.Sub(b), nil
	case Multiply:
		return a.Mul(b), nil
	case Divide:
		return a.Div(b)
	}
	return arith.Zero(), nil
}

// Engine is the evaluation state machine. It is not safe for concurrent
// use; a single controller owns each instance.
type Engine struct {
	acc         arith.Value
	pending     Operator
	lastOp      Operator
	lastOperand arith.Value
}

// New returns an engine with accumulator 0 and nothing pending.
func New() *Engine {
	return &Engine{}
}

// Clear resets the engine to its initial state.
func (e *Engine) Clear() {
	*e = Engine{}
}

// Accumulator returns the running result.
func (e *Engine) Accumulator() arith.Value { return e.acc }

// PendingOperator returns the queued operator, if any.
func (e *Engine) PendingOperator() (Operator, bool) {
	return e.pending, e.pending != None
}

// ReplacePending swaps the queued operator without computing anything.
// Used when two operators are pressed in a row: the second wins.
func (e *Engine) ReplacePending(op Operator) {
	e.pending = op
}

// SetOperator queues op. If an operator was already pending it is first
// collapsed: the accumulator becomes accumulator <pending> entry. With
// nothing pending the entry simply becomes the accumulator. Any remembered
// repeat pair is discarded. On error the engine is unchanged.
func (e *Engine) SetOperator(op Operator, entry arith.Value) error {
	acc := entry
	if e.pending != None {
		var err error
		acc, err = e.pending.apply(e.acc, entry)
		if err != nil {
			return err
		}
	}
	e.acc = acc
	e.pending = op
	e.lastOp = None
	e.lastOperand = arith.Zero()
	return nil
}

// Equals resolves the current expression and returns the new accumulator.
// With a pending operator it collapses it and remembers the operator and
// entry so that further Equals calls repeat the same operation. With no
// pending operator but a remembered pair it re-applies that pair, ignoring
// entry. Otherwise the entry becomes the accumulator verbatim. On error the
// engine is unchanged.
func (e *Engine) Equals(entry arith.Value) (arith.Value, error) {
	switch {
	case e.pending != None:
		acc, err := e.pending.apply(e.acc, entry)
		if err != nil {
			return arith.Zero(), err
		}
		e.acc = acc
		e.lastOp = e.pending
		e.lastOperand = entry
		e.pending = None
	case e.lastOp != None:
		acc, err := e.lastOp.apply(e.acc, e.lastOperand)
		if err != nil {
			return arith.Zero(), err
		}
		e.acc = acc
	default:
		e.acc = entry
	}
	return e.acc, nil
}
