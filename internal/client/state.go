package client

import "data-agent/internal/answer"

// State is the presentation state of the client. Exactly one of Idle, Busy,
// Succeeded or Failed.
type State interface {
	isState()
}

type Idle struct{}

type Busy struct{}

// Succeeded holds the response currently on display.
type Succeeded struct {
	Response answer.Response
}

// Failed holds the message shown inline to the user.
type Failed struct {
	Message string
}

func (Idle) isState()      {}
func (Busy) isState()      {}
func (Succeeded) isState() {}
func (Failed) isState()    {}

// Current returns the displayed response, if any.
func Current(s State) (answer.Response, bool) {
	if st, ok := s.(Succeeded); ok {
		return st.Response, true
	}
	return answer.Response{}, false
}
