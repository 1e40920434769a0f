package calculator

import "strings"

// ErrorMarker is shown on the display whenever the entry cannot be rendered
// as a number, including after a division by zero.
const ErrorMarker = "Erro"

// Entry is the value currently being typed or just computed. It is either
// numeric text using '.' as the decimal separator, or the error state.
type Entry struct {
	text    string
	isError bool
}

// NumberEntry wraps internal numeric text. Transient texts such as "", "."
// or "1." are valid while an entry is being built.
func NumberEntry(text string) Entry {
	return Entry{text: text}
}

// ErrorEntry is the state entered after dividing by zero.
func ErrorEntry() Entry {
	return Entry{isError: true}
}

// IsError reports whether the entry holds the error state.
func (e Entry) IsError() bool {
	return e.isError
}

// Text returns the internal numeric text. It is empty for the error state.
func (e Entry) Text() string {
	if e.isError {
		return ""
	}
	return e.text
}

// incomplete reports whether the entry cannot be used as an operand yet.
func (e Entry) incomplete() bool {
	if e.isError {
		return true
	}
	switch e.text {
	case "", ".", "-":
		return true
	}
	return false
}

// digitCount counts the characters of the entry other than the separator.
func (e Entry) digitCount() int {
	return len(strings.Replace(e.text, ".", "", 1))
}

func (e Entry) String() string {
	if e.isError {
		return ErrorMarker
	}
	return e.text
}
