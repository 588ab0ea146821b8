package contracts

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrDecode           = errors.New("malformed MIDI container")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSinkUnavailable  = errors.New("output sink unavailable")
)

// DecodeError reports an input byte stream that is not a well-formed MIDI container.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// InvalidParameterError reports a generated value outside its MIDI range,
// or a recipe that produced nothing. Track is -1 when not track-specific.
type InvalidParameterError struct {
	Track  int
	Field  string
	Value  int
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Track < 0 {
		return fmt.Sprintf("%v: %s=%d %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%v: track %d: %s=%d %s", ErrInvalidParameter, e.Track, e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// SinkUnavailableError reports an output path or pipe that could not be created or opened.
type SinkUnavailableError struct {
	Path string
	Err  error
}

func (e *SinkUnavailableError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSinkUnavailable, e.Path, e.Err)
}

func (e *SinkUnavailableError) Unwrap() error { return e.Err }

func (e *SinkUnavailableError) Is(target error) bool { return target == ErrSinkUnavailable }
