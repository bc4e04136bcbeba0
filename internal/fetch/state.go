// Package fetch models the lifecycle of a recommendation request and the
// provider that drives it.
package fetch

import (
	"errors"

	"advisor/internal/rules"
)

// Status is the active tag of a State.
type Status int

const (
	// StatusIdle means no status flag is set; nothing renders.
	StatusIdle Status = iota
	StatusUninitialized
	StatusLoading
	StatusFetching
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusFetching:
		return "fetching"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Pending reports whether a request is outstanding or not yet started.
func (s Status) Pending() bool {
	return s == StatusUninitialized || s == StatusLoading || s == StatusFetching
}

// State is a snapshot of the request. Data is set only for StatusSuccess and
// Err only for StatusError.
type State struct {
	Status Status
	Data   *rules.Response
	Err    error
}

var (
	// ErrAmbiguousState is returned when more than one status flag is set.
	ErrAmbiguousState = errors.New("fetch state has more than one active status")
	// ErrMissingPayload is returned for a success flag without data.
	ErrMissingPayload = errors.New("fetch state success without payload")
)

// Flags mirrors the independent booleans exposed by query hooks.
type Flags struct {
	IsUninitialized bool
	IsLoading       bool
	IsFetching      bool
	IsSuccess       bool
	IsError         bool
}

// FromFlags builds a State from independent flags, rejecting combinations
// where more than one is set.
func FromFlags(f Flags, data *rules.Response, err error) (State, error) {
	active := 0
	status := StatusIdle
	for _, candidate := range []struct {
		set    bool
		status Status
	}{
		{f.IsUninitialized, StatusUninitialized},
		{f.IsLoading, StatusLoading},
		{f.IsFetching, StatusFetching},
		{f.IsSuccess, StatusSuccess},
		{f.IsError, StatusError},
	} {
		if candidate.set {
			active++
			status = candidate.status
		}
	}
	if active > 1 {
		return State{}, ErrAmbiguousState
	}

	switch status {
	case StatusSuccess:
		if data == nil {
			return State{}, ErrMissingPayload
		}
		return Success(*data), nil
	case StatusError:
		return Failed(err), nil
	default:
		return State{Status: status}, nil
	}
}

func Idle() State          { return State{Status: StatusIdle} }
func Uninitialized() State { return State{Status: StatusUninitialized} }
func Loading() State       { return State{Status: StatusLoading} }
func Fetching() State      { return State{Status: StatusFetching} }

// Success wraps a fetched response.
func Success(data rules.Response) State {
	return State{Status: StatusSuccess, Data: &data}
}

// Failed records a fetch error. A nil err is replaced so callers can always log it.
func Failed(err error) State {
	if err == nil {
		err = errors.New("fetch failed")
	}
	return State{Status: StatusError, Err: err}
}
