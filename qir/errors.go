package qir

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyBaseDocument        = errors.New("qir: base document has no pages")
	ErrInspectionPageOutOfRange = errors.New("qir: inspection page out of range")
)

// FetchError: a remote source answered with a non-success status or did not answer in time
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the fetch ran out of time
func (e *FetchError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// DecodeError: an inline payload is not valid base64, or the source type is unknown
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode inline payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError: bytes are not a usable PDF document
type ParseError struct {
	Source string // label or locator, for messages only
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse document: %v", e.Err)
	}
	return fmt.Sprintf("parse document %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError: the index page could not be built
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render index: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// CopyError: page transplantation into the merged document failed
type CopyError struct {
	Section string // "base", "index", certificate label, "output"
	Page    int    // 1-based source page, 0 when not page specific
	Err     error
}

func (e *CopyError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("copy %s page %d: %v", e.Section, e.Page, e.Err)
	}
	return fmt.Sprintf("copy %s: %v", e.Section, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
