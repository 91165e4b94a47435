package view

import "github.com/vizboard/vizboard/record"

type Status int

const (
	Loading Status = iota
	Error
	Ready
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Ready:
		return "ready"
	}
	return "unknown"
}

type Mode int

const (
	ShowAll Mode = iota
	TopFive
)

func (m Mode) String() string {
	if m == TopFive {
		return "top_five"
	}
	return "show_all"
}

// State is the complete, immutable state of one view. Records is shared with
// every other view loaded from the same source and must not be modified.
type State struct {
	Status  Status
	Err     error
	Records []record.Record
	Field   record.Field
	Mode    Mode
}

// Initial is the state of a view before its records arrive.
func Initial() State {
	return State{Status: Loading, Field: record.Region, Mode: ShowAll}
}

// Event is an input to Reduce.
type Event interface{ event() }

type (
	// Loaded carries the records of a successful fetch.
	Loaded struct{ Records []record.Record }
	// Failed carries the error of a failed fetch.
	Failed struct{ Err error }
	// Fetching starts a new load attempt after an error.
	Fetching    struct{}
	SelectField struct{ Field record.Field }
	// Filter switches a ready view to show every group.
	Filter struct{}
	// Rank switches a ready view to the top five.
	Rank struct{}
)

func (Loaded) event()      {}
func (Failed) event()      {}
func (Fetching) event()    {}
func (SelectField) event() {}
func (Filter) event()      {}
func (Rank) event()        {}

// Reduce returns the state that follows s after e. Events that do not apply
// to the current status leave s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Loaded:
		if s.Status != Loading {
			return s
		}
		s.Status, s.Err, s.Records, s.Mode = Ready, nil, e.Records, ShowAll
	case Failed:
		if s.Status != Loading {
			return s
		}
		s.Status, s.Err, s.Records = Error, e.Err, nil
	case Fetching:
		if s.Status != Error {
			return s
		}
		s.Status, s.Err = Loading, nil
	case SelectField:
		s.Field = e.Field
	case Filter:
		if s.Status == Ready {
			s.Mode = ShowAll
		}
	case Rank:
		if s.Status == Ready {
			s.Mode = TopFive
		}
	}
	return s
}
