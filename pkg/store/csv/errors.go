package csv

import "fmt"

// MissingSourceError indicates one of the five required sources is not
// available. Loading never proceeds partially: either all five tables load
// or nothing downstream runs.
type MissingSourceError struct {
	Source string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("required source %q is not available", e.Source)
}

// MissingColumnError indicates a source does not conform to its schema.
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("source %q is missing required column %q", e.Source, e.Column)
}

// MalformedTimestampError indicates an order row whose purchase timestamp
// cannot be parsed. Such rows are fatal, not silently dropped.
type MalformedTimestampError struct {
	Source string
	Row    int // 1-based data row, excluding the header
	Value  string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("source %q row %d: unparseable timestamp %q", e.Source, e.Row, e.Value)
}
