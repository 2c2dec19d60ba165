package turtle

import "context"

// MoveToLocation is the axis-ordered (y, then x, then z) relative planner
// strictly axis-aligned, greedy, and deliberately not
// shortest-path — it rotates only by right turns, even when a single left
// turn would suffice. When costOnly is true no commands are sent and the
// pose is not mutated; only the Manhattan distance is returned.
//
// A zero delta on the x or z axis skips both that axis's rotation and its
// stepping. The final right-turn-until-NORTH realignment after the z leg
// always runs, even if the z leg itself did nothing.
func (r *Record) MoveToLocation(ctx context.Context, target Location, costOnly bool) (int, error) {
	pose := r.Pose()
	dx := target.X - pose.Location.X
	dy := target.Y - pose.Location.Y
	dz := target.Z - pose.Location.Z

	cost := 0

	for i := 0; i < abs(dy); i++ {
		if !costOnly {
			dir := Up
			if dy < 0 {
				dir = Down
			}
			if err := r.DigMove(ctx, dir); err != nil {
				return cost, err
			}
		}
		cost++
	}

	if !costOnly && dx != 0 {
		want := East
		if dx < 0 {
			want = West
		}
		if err := r.rotateTo(ctx, want); err != nil {
			return cost, err
		}
	}
	for i := 0; i < abs(dx); i++ {
		if !costOnly {
			if err := r.DigMove(ctx, Forward); err != nil {
				return cost, err
			}
		}
		cost++
	}

	if !costOnly && dz != 0 {
		want := South
		if dz < 0 {
			want = North
		}
		if err := r.rotateTo(ctx, want); err != nil {
			return cost, err
		}
	}
	for i := 0; i < abs(dz); i++ {
		if !costOnly {
			if err := r.DigMove(ctx, Forward); err != nil {
				return cost, err
			}
		}
		cost++
	}

	if !costOnly {
		if err := r.rotateTo(ctx, North); err != nil {
			return cost, err
		}
	}

	return cost, nil
}

// rotateTo turns right, at most three times, until the believed bearing
// matches target. Callers may not assume this picks the shorter direction.
func (r *Record) rotateTo(ctx context.Context, target Bearing) error {
	for i := 0; i < 4; i++ {
		if r.Pose().Bearing == target {
			return nil
		}
		if err := r.TurnRight(ctx); err != nil {
			return err
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
