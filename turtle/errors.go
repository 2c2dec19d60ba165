package turtle

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Checked with errors.Is; the
// CommandFailure re-classifications (InteractionFailed, InventoryMissing)
// wrap ErrCommandFailure at definition time, so errors.Is against either
// the specific sentinel or ErrCommandFailure succeeds.
var (
	// ErrMovementInvalid is a bad direction/bearing input to a primitive.
	ErrMovementInvalid = errors.New("movement invalid")
	// ErrCommandMalformed is a controller-side refusal to send a command.
	ErrCommandMalformed = errors.New("command malformed")
	// ErrCommandProtocol is an unexpected or unparseable agent reply.
	ErrCommandProtocol = errors.New("command protocol error")
	// ErrCommandFailure is a status=false agent reply.
	ErrCommandFailure = errors.New("command failed")
	// ErrInteractionFailed is a place/drop that returned false.
	ErrInteractionFailed = fmt.Errorf("interaction failed: %w", ErrCommandFailure)
	// ErrInventoryMissing is an inventory_select/drop_item that found or
	// dropped nothing.
	ErrInventoryMissing = fmt.Errorf("inventory item missing: %w", ErrCommandFailure)
	// ErrValueError is an out-of-range strategy parameter.
	ErrValueError = errors.New("value error")
)

// HaltFuel is a *normal* termination: the pre-run fuel check found
// insufficient fuel for the strategy to even begin safely.
type HaltFuel struct {
	Required int
	Have     int
}

func (h *HaltFuel) Error() string {
	return fmt.Sprintf("halt: insufficient fuel (need %d, have %d)", h.Required, h.Have)
}

// HaltReturned is a *normal* termination: the fuel guard preempted the
// strategy mid-run and returned the agent home successfully.
type HaltReturned struct {
	Home Location
}

func (h *HaltReturned) Error() string {
	return fmt.Sprintf("halt: returned home to %s", h.Home)
}

// IsHalt reports whether err is one of the normal-termination halt kinds.
func IsHalt(err error) bool {
	var hf *HaltFuel
	var hr *HaltReturned
	return errors.As(err, &hf) || errors.As(err, &hr)
}

// wrapf attaches context to a sentinel error while preserving errors.Is.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
