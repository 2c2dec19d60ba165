package turtle

import (
	"context"
)

// Move steps the agent one block in direction, updating the believed pose
// before the round trip completes (pose-ownership design note:
// belief advances first, so a command failure leaves belief ahead of
// reality). If the fuel guard is enabled it runs first and may itself halt
// the caller with HaltReturned.
func (r *Record) Move(ctx context.Context, dir Direction) error {
	if r.CheckFuelEnabled() {
		if err := r.fuelGuard(ctx); err != nil {
			return err
		}
	}

	pose := r.Pose()

	switch dir {
	case Forward, Back:
		sign := 1
		if dir == Back {
			sign = -1
		}
		step := horizontalStep[pose.Bearing]
		pose.Location = pose.Location.Add(sign*step.dx, 0, sign*step.dz)
		r.setPose(pose)

		if dir == Forward {
			_, err := r.SendCommand(ctx, "return turtle.forward()")
			return err
		}
		_, err := r.SendCommand(ctx, "return turtle.back()")
		return err

	case Up:
		pose.Location = pose.Location.Add(0, 1, 0)
		r.setPose(pose)
		_, err := r.SendCommand(ctx, "return turtle.up()")
		return err

	case Down:
		pose.Location = pose.Location.Add(0, -1, 0)
		r.setPose(pose)
		_, err := r.SendCommand(ctx, "return turtle.down()")
		return err

	default:
		return wrapf(ErrMovementInvalid, "bad direction %v", dir)
	}
}

// TurnLeft rotates the believed bearing left and issues the matching
// command.
func (r *Record) TurnLeft(ctx context.Context) error {
	pose := r.Pose()
	pose.Bearing = pose.Bearing.Left()
	r.setPose(pose)
	_, err := r.SendCommand(ctx, "return turtle.turnLeft()")
	return err
}

// TurnRight rotates the believed bearing right and issues the matching
// command.
func (r *Record) TurnRight(ctx context.Context) error {
	pose := r.Pose()
	pose.Bearing = pose.Bearing.Right()
	r.setPose(pose)
	_, err := r.SendCommand(ctx, "return turtle.turnRight()")
	return err
}

// Dig mines the block in direction. Back is rejected — you cannot dig
// behind yourself.
func (r *Record) Dig(ctx context.Context, dir Direction) error {
	switch dir {
	case Forward:
		_, err := r.SendCommand(ctx, "return turtle.dig()")
		return err
	case Down:
		_, err := r.SendCommand(ctx, "return turtle.digDown()")
		return err
	case Up:
		_, err := r.SendCommand(ctx, "return turtle.digUp()")
		return err
	default:
		return wrapf(ErrCommandMalformed, "cannot dig %v", dir)
	}
}

// Inspect reports the block metadata in direction. On command failure
// (no block there) it returns an empty mapping rather than an error.
func (r *Record) Inspect(ctx context.Context, dir Direction) (map[string]interface{}, error) {
	var (
		resp interface{}
		err  error
	)

	switch dir {
	case Forward:
		resp, err = r.sendAndGetData(ctx, "return turtle.inspect()")
	case Down:
		resp, err = r.sendAndGetData(ctx, "return turtle.inspectDown()")
	case Up:
		resp, err = r.sendAndGetData(ctx, "return turtle.inspectUp()")
	default:
		return nil, wrapf(ErrCommandMalformed, "cannot inspect %v", dir)
	}
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return map[string]interface{}{}, nil
	}
	data, ok := resp.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return data, nil
}

// sendAndGetData sends snippet and returns its data payload on success, or
// nil (not an error) on status=false — mirroring the Python original's
// "failure means no block" semantics for inspect.
func (r *Record) sendAndGetData(ctx context.Context, snippet string) (interface{}, error) {
	resp, err := r.SendCommand(ctx, snippet)
	if err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, nil
	}
	return resp.Data, nil
}

// DigIfBlock inspects direction and, if the block reported is mineable by
// pickaxe or shovel, digs it.
func (r *Record) DigIfBlock(ctx context.Context, dir Direction) error {
	if dir == Back {
		return wrapf(ErrMovementInvalid, "can't dig backwards")
	}

	data, err := r.Inspect(ctx, dir)
	if err != nil {
		return err
	}

	tagsRaw, _ := data["tags"]
	tags, _ := tagsRaw.(map[string]interface{})
	for _, tag := range []string{"minecraft:mineable/pickaxe", "minecraft:mineable/shovel"} {
		if v, ok := tags[tag]; ok {
			if b, ok := v.(bool); ok && b {
				return r.Dig(ctx, dir)
			}
		}
	}
	return nil
}

// DigMove digs then moves in direction; the dig is unconditional, since the
// agent reports no error when there's nothing to dig.
func (r *Record) DigMove(ctx context.Context, dir Direction) error {
	if err := r.Dig(ctx, dir); err != nil {
		return err
	}
	return r.Move(ctx, dir)
}
