// Package calculator holds the arithmetic state behind the keypad: the entry
// being typed, a pending left operand and operator, and the rules for
// chaining operations left to right.
package calculator

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// State is the coarse state of the engine.
type State int

const (
	Entering State = iota
	OperatorPending
	Error
)

func (s State) String() string {
	switch s {
	case OperatorPending:
		return "operator-pending"
	case Error:
		return "error"
	default:
		return "entering"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the read-only projection consumed by renderers.
type Snapshot struct {
	Display       string   `json:"display" yaml:"display"`
	PreviousLabel string   `json:"previous" yaml:"previous"`
	Entry         string   `json:"entry" yaml:"entry"`
	Operator      Operator `json:"operator" yaml:"operator"`
	State         State    `json:"state" yaml:"state"`
}

// Observer is notified after every call that may have changed the state.
type Observer func(Snapshot)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers fn to be called after each operation.
func WithObserver(fn Observer) Option {
	return func(e *Engine) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// Engine is a single calculator instance. It is not safe for concurrent use.
type Engine struct {
	current          Entry
	previous         string
	operator         Operator
	resetOnNextDigit bool

	logger    *slog.Logger
	observers []Observer
}

// New returns an engine in its initial state.
func New(opts ...Option) *Engine {
	e := &Engine{
		current: NumberEntry("0"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Append adds a digit or the decimal separator to the current entry. Both
// ',' and '.' are accepted as the separator.
func (e *Engine) Append(symbol string) {
	if !isDigit(symbol) && !isSeparator(symbol) {
		return
	}
	defer e.notify()

	if e.current.isError || e.current.text == "0" || e.resetOnNextDigit {
		e.current = NumberEntry("")
		e.resetOnNextDigit = false
	}

	if isSeparator(symbol) {
		// exponential results take no fraction
		if strings.ContainsAny(e.current.text, InternalSeparator+"eE") {
			return
		}
		symbol = InternalSeparator
	}

	if e.current.digitCount() >= MaxDigits {
		return
	}

	e.current = NumberEntry(e.current.text + symbol)
}

// ChooseOperator installs op, resolving any pending operation first. An
// incomplete entry or the error state refuses the operator.
func (e *Engine) ChooseOperator(op Operator) {
	if op == OpNone || e.current.incomplete() {
		return
	}
	defer e.notify()

	if e.previous != "" {
		e.compute()
		if e.current.isError {
			return
		}
	}

	e.operator = op
	e.previous = e.current.text
	e.resetOnNextDigit = true
	e.logger.Debug("operator chosen", "operator", op.String(), "operand", e.previous)
}

// Compute applies the pending operator to the previous operand and the
// current entry.
func (e *Engine) Compute() {
	defer e.notify()
	e.compute()
}

func (e *Engine) compute() {
	if e.current.isError {
		return
	}
	p, err := strconv.ParseFloat(e.previous, 64)
	if err != nil {
		return
	}
	c, err := strconv.ParseFloat(e.current.text, 64)
	if err != nil {
		return
	}
	if e.operator == OpNone {
		return
	}

	res, ok := e.operator.apply(p, c)
	if !ok || isNonFinite(res) {
		e.logger.Warn("computation failed", "operator", e.operator.String(), "previous", e.previous, "current", e.current.text)
		e.current = ErrorEntry()
	} else {
		e.current = NumberEntry(NumberText(res))
		e.logger.Debug("computed", "operator", e.operator.String(), "result", e.current.text)
	}

	e.operator = OpNone
	e.previous = ""
}

// DeleteLast removes the last character of the entry. An entry reduced to
// nothing or a lone minus sign becomes "0", as does the error state.
func (e *Engine) DeleteLast() {
	defer e.notify()

	if e.current.isError {
		e.current = NumberEntry("0")
		return
	}

	text := e.current.text
	if text != "" {
		text = text[:len(text)-1]
	}
	if text == "" || text == "-" {
		text = "0"
	}
	e.current = NumberEntry(text)
}

// ClearAll restores the initial state.
func (e *Engine) ClearAll() {
	defer e.notify()

	e.current = NumberEntry("0")
	e.previous = ""
	e.operator = OpNone
	e.resetOnNextDigit = false
}

// Current returns the entry being typed or the last result.
func (e *Engine) Current() Entry {
	return e.current
}

// Previous returns the pending left operand, or "" when nothing is pending.
func (e *Engine) Previous() string {
	return e.previous
}

// Operator returns the pending operator.
func (e *Engine) Operator() Operator {
	return e.operator
}

// State reports the coarse state of the engine. An operator stays pending
// while the right operand is typed, but the state is back to Entering once
// its first digit arrives.
func (e *Engine) State() State {
	switch {
	case e.current.isError:
		return Error
	case e.operator != OpNone && e.resetOnNextDigit:
		return OperatorPending
	default:
		return Entering
	}
}

// Display returns the formatted current entry. A fraction still being typed
// is shown as typed, so a trailing separator or trailing zeros stay visible.
func (e *Engine) Display() string {
	if e.current.isError {
		return ErrorMarker
	}
	text := e.current.text
	switch text {
	case "", "-":
		text = "0"
	}
	if typingFraction(text) {
		if strings.HasPrefix(text, InternalSeparator) {
			text = "0" + text
		}
		return ToDisplay(text)
	}
	return FormatForDisplay(text)
}

// typingFraction reports whether text is a plain decimal whose fraction
// ends in the separator or a zero.
func typingFraction(text string) bool {
	if !strings.Contains(text, InternalSeparator) || strings.ContainsAny(text, "eE") {
		return false
	}
	return strings.HasSuffix(text, InternalSeparator) || strings.HasSuffix(text, "0")
}

// PreviousLabel returns "<previous> <operator>" while an operation is
// pending and "" otherwise.
func (e *Engine) PreviousLabel() string {
	if e.operator == OpNone {
		return ""
	}
	return ToDisplay(e.previous) + " " + e.operator.Symbol()
}

// Snapshot returns the current projection.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:       e.Display(),
		PreviousLabel: e.PreviousLabel(),
		Entry:         e.current.String(),
		Operator:      e.operator,
		State:         e.State(),
	}
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.observers {
		fn(snap)
	}
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func isSeparator(s string) bool {
	return s == DisplaySeparator || s == InternalSeparator
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
