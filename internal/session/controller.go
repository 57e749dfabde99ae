// Package session implements the calculator's input state machine: the
// editable display buffer, overwrite/append semantics, the memory register,
// the error latch, and the dispatch of every user command into engine calls.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"deskcalc/internal/arith"
	"deskcalc/internal/engine"
)

// Command tokens. Digits use Digit(0..9); paste uses Paste(text).
const (
	CmdDecimal      = "DECIMAL"
	CmdNegate       = "NEGATE"
	CmdSqrt         = "SQRT"
	CmdPercent      = "PERCENT"
	CmdAdd          = "ADD"
	CmdSubtract     = "SUBTRACT"
	CmdMultiply     = "MULTIPLY"
	CmdDivide       = "DIVIDE"
	CmdEquals       = "EQUALS"
	CmdBack         = "BACK"
	CmdClearEntry   = "CE"
	CmdAllClear     = "AC"
	CmdMemClear     = "MEM_CLEAR"
	CmdMemRecall    = "MEM_RECALL"
	CmdMemStore     = "MEM_STORE"
	CmdMemAdd       = "MEM_ADD"
	CmdMemSub       = "MEM_SUB"
	CmdHistoryClear = "HISTORY_CLEAR"

	digitPrefix = "DIGIT_"
	pastePrefix = "PASTE:"
)

// ErrorMarker is the display text shown while the error latch is set.
const ErrorMarker = "Error"

// maxDigits caps the digit characters the display buffer accepts.
const maxDigits = 16

// Digit returns the command token for digit d.
func Digit(d int) string {
	return digitPrefix + strconv.Itoa(d)
}

// Paste returns the command token carrying pasted clipboard text.
func Paste(text string) string {
	return pastePrefix + text
}

var plainCommands = map[string]struct{}{
	CmdDecimal: {}, CmdNegate: {}, CmdSqrt: {}, CmdPercent: {},
	CmdAdd: {}, CmdSubtract: {}, CmdMultiply: {}, CmdDivide: {},
	CmdEquals: {}, CmdBack: {}, CmdClearEntry: {}, CmdAllClear: {},
	CmdMemClear: {}, CmdMemRecall: {}, CmdMemStore: {}, CmdMemAdd: {},
	CmdMemSub: {}, CmdHistoryClear: {},
}

// Known reports whether cmd belongs to the command vocabulary.
func Known(cmd string) bool {
	if strings.HasPrefix(cmd, pastePrefix) {
		return true
	}
	if _, ok := digitOf(cmd); ok {
		return true
	}
	_, ok := plainCommands[cmd]
	return ok
}

func digitOf(cmd string) (int, bool) {
	s, ok := strings.CutPrefix(cmd, digitPrefix)
	if !ok {
		return 0, false
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d > 9 {
		return 0, false
	}
	return d, true
}

// Controller owns one engine and one display. It is the sole mutator of
// both and must be driven from a single goroutine; callers that dispatch
// concurrently provide their own serialization.
type Controller struct {
	eng  *engine.Engine
	view Display

	overwrite           bool
	justPressedOperator bool
	latched             bool

	memory    arith.Value
	memorySet bool
}

// New returns a controller showing "0" with an empty preview and no memory.
func New(view Display) *Controller {
	c := &Controller{
		eng:       engine.New(),
		view:      view,
		overwrite: true,
	}
	view.SetPreviewText("")
	view.SetDisplayText("0")
	view.SetMemoryIndicator(false)
	return c
}

// ErrorLatched reports whether the session is in the latched error state.
func (c *Controller) ErrorLatched() bool { return c.latched }

// Handle dispatches one command token. While the error latch is set, every
// command except all-clear and history-clear is rejected with a flash; the
// latch check runs before any per-command logic.
func (c *Controller) Handle(cmd string) {
	if c.latched && cmd != CmdAllClear && cmd != CmdHistoryClear {
		c.view.FlashError()
		return
	}

	if text, ok := strings.CutPrefix(cmd, pastePrefix); ok {
		c.paste(text)
		c.updatePreview()
		return
	}
	if d, ok := digitOf(cmd); ok {
		c.appendDigit(d)
		c.updatePreview()
		return
	}

	switch cmd {
	case CmdDecimal:
		c.appendDecimal()
	case CmdNegate:
		c.toggleSign()
	case CmdSqrt:
		c.sqrtEntry()
	case CmdPercent:
		c.applyPercent()

	case CmdAdd:
		c.pressOperator(engine.Add)
	case CmdSubtract:
		c.pressOperator(engine.Subtract)
	case CmdMultiply:
		c.pressOperator(engine.Multiply)
	case CmdDivide:
		c.pressOperator(engine.Divide)
	case CmdEquals:
		c.pressEquals()

	case CmdBack:
		c.backspace()
	case CmdClearEntry:
		c.clearEntry()
	case CmdAllClear:
		c.allClear()

	case CmdMemClear:
		c.memClear()
	case CmdMemRecall:
		c.memRecall()
	case CmdMemStore:
		c.memStore()
	case CmdMemAdd:
		c.memAccumulate(false)
	case CmdMemSub:
		c.memAccumulate(true)

	case CmdHistoryClear:
		c.view.ClearHistory()
	}

	c.updatePreview()
}

func (c *Controller) appendDigit(d int) {
	txt := c.view.GetDisplayText()
	if c.overwrite || txt == "0" {
		txt = strconv.Itoa(d)
		c.overwrite = false
	} else {
		if digitCount(txt) >= maxDigits {
			c.view.FlashError()
			return
		}
		txt += strconv.Itoa(d)
	}
	c.justPressedOperator = false
	c.view.SetDisplayText(txt)
}

func (c *Controller) appendDecimal() {
	txt := c.view.GetDisplayText()
	switch {
	case c.overwrite:
		txt = "0."
		c.overwrite = false
	case !strings.Contains(txt, "."):
		txt += "."
	default:
		c.view.FlashError()
		return
	}
	c.justPressedOperator = false
	c.view.SetDisplayText(txt)
}

func (c *Controller) toggleSign() {
	txt := c.view.GetDisplayText()
	if txt == "0" || txt == "0.0" {
		return
	}
	if strings.HasPrefix(txt, "-") {
		txt = txt[1:]
	} else {
		txt = "-" + txt
	}
	c.view.SetDisplayText(txt)
}

func (c *Controller) sqrtEntry() {
	entry := c.parseDisplay()
	result, err := entry.Sqrt()
	if err != nil {
		c.latchError()
		return
	}
	c.view.SetDisplayText(arith.Format(result))
	c.overwrite = true
	c.justPressedOperator = false
	c.view.AppendHistoryEntry(fmt.Sprintf("√(%s) = %s", arith.Format(entry), arith.Format(result)))
}

// applyPercent reinterprets the entry relative to the pending operation:
// for additive operators the percent amount is accumulator × entry / 100
// (price plus 15% of price), otherwise plain entry / 100. The multiplicative
// and no-operator cases deliberately share the plain policy.
func (c *Controller) applyPercent() {
	entry := c.parseDisplay()
	var amount arith.Value
	if op, ok := c.eng.PendingOperator(); ok && (op == engine.Add || op == engine.Subtract) {
		amount = c.eng.Accumulator().Mul(entry).Percent()
	} else {
		amount = entry.Percent()
	}
	c.view.SetDisplayText(arith.Format(amount))
	c.overwrite = true
	c.justPressedOperator = false
}

func (c *Controller) pressOperator(op engine.Operator) {
	entry := c.parseDisplay()
	if _, pending := c.eng.PendingOperator(); pending && c.justPressedOperator {
		// Two operators in a row: swap without computing.
		c.eng.ReplacePending(op)
	} else if err := c.eng.SetOperator(op, entry); err != nil {
		c.latchError()
		return
	}
	c.overwrite = true
	c.justPressedOperator = true
	c.view.SetDisplayText(arith.Format(c.eng.Accumulator()))
}

func (c *Controller) pressEquals() {
	entry := c.parseDisplay()
	before := c.eng.Accumulator()
	usedOp, hadPending := c.eng.PendingOperator()

	result, err := c.eng.Equals(entry)
	if err != nil {
		c.latchError()
		return
	}

	c.view.SetDisplayText(arith.Format(result))
	c.overwrite = true
	c.justPressedOperator = false

	if hadPending {
		c.view.AppendHistoryEntry(fmt.Sprintf("%s %s %s = %s",
			arith.Format(before), usedOp.Glyph(), arith.Format(entry), arith.Format(result)))
	}
}

func (c *Controller) backspace() {
	txt := c.view.GetDisplayText()
	if c.overwrite {
		c.view.FlashError()
		return
	}
	if len(txt) <= 1 || (len(txt) == 2 && strings.HasPrefix(txt, "-")) {
		c.view.SetDisplayText("0")
		c.overwrite = true
		return
	}
	txt = txt[:len(txt)-1]
	if txt == "-" {
		txt = "0"
	}
	c.view.SetDisplayText(txt)
}

func (c *Controller) clearEntry() {
	c.view.SetDisplayText("0")
	c.overwrite = true
	c.justPressedOperator = false
}

// allClear resets the engine and every session flag. It is the only way out
// of the latched error state.
func (c *Controller) allClear() {
	c.eng.Clear()
	c.latched = false
	c.view.SetAllControlsEnabled(true, false)
	c.view.SetDisplayText("0")
	c.view.SetPreviewText("")
	c.overwrite = true
	c.justPressedOperator = false
}

func (c *Controller) memClear() {
	c.memory = arith.Zero()
	c.memorySet = false
	c.view.SetMemoryIndicator(false)
}

func (c *Controller) memRecall() {
	if !c.memorySet {
		return
	}
	c.view.SetDisplayText(arith.Format(c.memory))
	c.overwrite = true
}

func (c *Controller) memStore() {
	c.memory = c.parseDisplay()
	c.memorySet = true
	c.view.SetMemoryIndicator(true)
}

func (c *Controller) memAccumulate(subtract bool) {
	base := arith.Zero()
	if c.memorySet {
		base = c.memory
	}
	if subtract {
		c.memory = base.Sub(c.parseDisplay())
	} else {
		c.memory = base.Add(c.parseDisplay())
	}
	c.memorySet = true
	c.view.SetMemoryIndicator(true)
}

func (c *Controller) paste(raw string) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if !isDecimalLiteral(s) {
		c.view.FlashError()
		return
	}
	c.view.SetDisplayText(s)
	c.overwrite = true
}

func (c *Controller) latchError() {
	c.latched = true
	c.view.SetDisplayText(ErrorMarker)
	c.view.FlashError()
	c.view.SetAllControlsEnabled(false, true)
}

// updatePreview projects engine state into the preview line: empty while
// latched or idle, otherwise "<accumulator> <operator glyph>".
func (c *Controller) updatePreview() {
	op, ok := c.eng.PendingOperator()
	if c.latched || !ok {
		c.view.SetPreviewText("")
		return
	}
	c.view.SetPreviewText(arith.Format(c.eng.Accumulator()) + " " + op.Glyph())
}

func (c *Controller) parseDisplay() arith.Value {
	txt := c.view.GetDisplayText()
	if strings.EqualFold(txt, ErrorMarker) {
		return arith.Zero()
	}
	v, err := arith.Parse(txt)
	if err != nil {
		return arith.Zero()
	}
	return v
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// isDecimalLiteral accepts an optional leading minus, digits and at most one
// decimal point. Exponents and grouping are not valid display text.
func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	digits, dot := 0, false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}
