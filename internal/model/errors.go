package model

import "fmt"

// FormatError reports unparseable geometry or attribute input. Failures
// from the underlying readers are passed through unmodified via Err.
// Record is the zero-based index of the offending record, or -1 when
// the failure is not attributable to a single record.
type FormatError struct {
	Source string
	Record int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("format error in %s at record %d: %v", e.Source, e.Record, e.Err)
	}
	return fmt.Sprintf("format error in %s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// CRSMismatchError reports that two collections entering an overlay
// carry different CRS tags.
type CRSMismatchError struct {
	Left  string
	Right string
}

func (e *CRSMismatchError) Error() string {
	return fmt.Sprintf("crs mismatch: %q vs %q", e.Left, e.Right)
}
