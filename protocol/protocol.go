// Package protocol implements the wire codec between the controller and a
// turtle agent: a tagged union of JSON message kinds exchanged over a
// text-mode websocket, with no framing above JSON itself.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the known message variants. Register and Response
// travel agent -> controller; Data, Error, and Command travel
// controller -> agent; Status goes only to dashboard viewers.
type Kind string

const (
	KindRegister Kind = "register"
	KindData     Kind = "data"
	KindError    Kind = "error"
	KindCommand  Kind = "command"
	KindResponse Kind = "response"
	// KindStatus is not part of the agent-facing protocol. It is emitted
	// only by the dashboard listener as a liveness frame; see NewStatus.
	KindStatus Kind = "status"
)

// Register is the mandatory first frame of every connection, announcing
// the agent's uid.
type Register struct {
	Type Kind `json:"type"`
	ID   int  `json:"id"`
}

// Data carries a human-readable acknowledgement, e.g. "Registered".
type Data struct {
	Type    Kind   `json:"type"`
	Message string `json:"message"`
}

// NewData builds a Data frame with the type discriminator set.
func NewData(message string) Data {
	return Data{Type: KindData, Message: message}
}

// Error carries a protocol error message; the controller closes the
// connection after sending one.
type Error struct {
	Type    Kind   `json:"type"`
	Message string `json:"message"`
}

// NewError builds an Error frame with the type discriminator set.
func NewError(message string) Error {
	return Error{Type: KindError, Message: message}
}

// Command carries a single expression-returning snippet for the agent to
// evaluate. Command must contain the substring "return" — see
// turtle.Conn.SendCommand.
type Command struct {
	Type    Kind   `json:"type"`
	Command string `json:"command"`
}

// NewCommand builds a Command frame with the type discriminator set.
func NewCommand(snippet string) Command {
	return Command{Type: KindCommand, Command: snippet}
}

// Response is the agent's single reply to a Command.
type Response struct {
	Type   Kind        `json:"type"`
	Status bool        `json:"status"`
	Data   interface{} `json:"data"`
}

// Status is the dashboard's liveness frame, supplemented from the original
// source's socket/types.py StatusMessage. It is never part of the
// agent-facing protocol and Decode never produces one — only the dashboard
// listener emits it, directly via NewStatus, after a viewer connects.
type Status struct {
	Type   Kind   `json:"type"`
	Status string `json:"status"`
}

// NewStatus builds a Status frame with the type discriminator set. state is
// conventionally "OK" or "ERROR".
func NewStatus(state string) Status {
	return Status{Type: KindStatus, Status: state}
}

// envelope is used only to sniff the type discriminator and the fields
// required by each variant's schema, before committing to one.
type envelope struct {
	Type    *Kind        `json:"type"`
	ID      *int         `json:"id"`
	Message *string      `json:"message"`
	Command *string      `json:"command"`
	Status  *bool        `json:"status"`
	Data    *interface{} `json:"data"`
}

// ErrNoType is returned when a frame has no "type" discriminator at all.
var ErrNoType = fmt.Errorf("no type field in message")

// Decode tries each known variant's schema in turn and returns the first
// that validates, per the tagged-union dispatch rule: a variant validates
// only when its required fields are actually present on the frame, not
// merely absent-and-zero-valued.
func Decode(payload []byte) (interface{}, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, err
	}
	if env.Type == nil {
		return nil, ErrNoType
	}

	switch *env.Type {
	case KindRegister:
		if env.ID == nil {
			return nil, fmt.Errorf("register message missing id")
		}
		return Register{Type: KindRegister, ID: *env.ID}, nil
	case KindData:
		if env.Message == nil {
			return nil, fmt.Errorf("data message missing message")
		}
		return Data{Type: KindData, Message: *env.Message}, nil
	case KindError:
		if env.Message == nil {
			return nil, fmt.Errorf("error message missing message")
		}
		return Error{Type: KindError, Message: *env.Message}, nil
	case KindCommand:
		if env.Command == nil {
			return nil, fmt.Errorf("command message missing command")
		}
		return Command{Type: KindCommand, Command: *env.Command}, nil
	case KindResponse:
		if env.Status == nil {
			return nil, fmt.Errorf("response message missing status")
		}
		var data interface{}
		if env.Data != nil {
			data = *env.Data
		}
		return Response{Type: KindResponse, Status: *env.Status, Data: data}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %q", *env.Type)
	}
}
