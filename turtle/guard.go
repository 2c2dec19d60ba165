package turtle

import "context"

// fuelGuard is the pre-move check: read current fuel,
// compute the conservative cost of an axis-ordered return home, cache both,
// and — if the return would no longer be affordable — disable itself,
// drive the return home, and halt the strategy with HaltReturned.
//
// The cost calculation is conservative: every step of the axis-ordered
// return is charged one fuel unit and turns are free, since this domain's
// turns consume no fuel.
func (r *Record) fuelGuard(ctx context.Context) error {
	resp, err := r.SendCommand(ctx, "return turtle.getFuelLevel()")
	if err != nil {
		return err
	}
	if !resp.Status {
		return wrapf(ErrCommandProtocol, "fuel read failed")
	}

	fuel, err := asInt(resp.Data)
	if err != nil {
		return wrapf(ErrCommandProtocol, "fuel read returned non-numeric data: %v", err)
	}

	home := r.Home()
	returnCost, err := r.MoveToLocation(ctx, home, true)
	if err != nil {
		return err
	}

	r.setLatestFuel(fuel)
	r.setStepsFromHome(returnCost)

	if returnCost >= fuel {
		r.SetCheckFuel(false)
		if _, err := r.MoveToLocation(ctx, home, false); err != nil {
			return err
		}
		return &HaltReturned{Home: home}
	}

	return nil
}

// asInt coerces a json-decoded numeric response (always float64 once
// decoded through encoding/json's interface{} path) into an int.
func asInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, wrapf(ErrCommandProtocol, "expected a number, got %T", v)
	}
}
