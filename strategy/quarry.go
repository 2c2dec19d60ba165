package strategy

import (
	"context"

	"github.com/alexfayers/cc-miner/turtle"
)

// QuarryStrategy mines a rectangular prism straight down from the starting
// pose, serpentining across each layer before descending to the next.
type QuarryStrategy struct {
	XZSize          int
	YSize           int
	PrerunFuelCheck bool
}

// NewQuarryStrategy returns a quarry with the documented defaults.
func NewQuarryStrategy() *QuarryStrategy {
	return &QuarryStrategy{XZSize: 8, YSize: 10, PrerunFuelCheck: false}
}

func (q *QuarryStrategy) requiredFuel() int {
	return (q.XZSize*q.XZSize*q.YSize+2*q.XZSize+q.YSize)/80 + 1
}

func (q *QuarryStrategy) Run(ctx context.Context, rec *turtle.Record) error {
	if q.PrerunFuelCheck {
		required := q.requiredFuel()
		// Refuel's own failure doesn't end the run here; the fresh fuel
		// read below is what decides whether to halt.
		_ = rec.Refuel(ctx, required)
		fuel, err := rec.Fuel(ctx)
		if err != nil {
			return err
		}
		if fuel < required {
			return &turtle.HaltFuel{Required: required, Have: fuel}
		}
	}

	for layer := 0; layer <= q.YSize; layer++ {
		for row := 0; row < q.XZSize; row++ {
			for i := 0; i < q.XZSize-1; i++ {
				if err := fallingBlockCheck(ctx, rec); err != nil {
					return err
				}
				if err := rec.DigMove(ctx, turtle.Forward); err != nil {
					return err
				}
			}

			if row < q.XZSize-1 {
				if row%2 == 0 {
					if err := rec.TurnRight(ctx); err != nil {
						return err
					}
					if err := rec.DigMove(ctx, turtle.Forward); err != nil {
						return err
					}
					if err := rec.TurnRight(ctx); err != nil {
						return err
					}
				} else {
					if err := rec.TurnLeft(ctx); err != nil {
						return err
					}
					if err := rec.DigMove(ctx, turtle.Forward); err != nil {
						return err
					}
					if err := rec.TurnLeft(ctx); err != nil {
						return err
					}
				}
			}
		}

		if q.XZSize%2 == 0 {
			if err := rec.TurnRight(ctx); err != nil {
				return err
			}
		} else {
			if err := rec.TurnLeft(ctx); err != nil {
				return err
			}
		}
		if err := rec.DigMove(ctx, turtle.Down); err != nil {
			return err
		}
	}

	return processComplete(ctx, rec)
}
