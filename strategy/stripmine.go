package strategy

import (
	"context"
	"errors"

	"github.com/alexfayers/cc-miner/turtle"
)

// StripmineStrategy mines branch_pair_count pairs of torch-lit branches off
// a central trunk.
type StripmineStrategy struct {
	BranchSpacing   int
	BranchLength    int
	BranchPairCount int
	PrerunFuelCheck bool
	DoPlaceTorches  bool
	TorchLight      int
}

// NewStripmineStrategy returns a stripmine with the documented defaults.
func NewStripmineStrategy() *StripmineStrategy {
	return &StripmineStrategy{
		BranchSpacing:   3,
		BranchLength:    47,
		BranchPairCount: 8,
		PrerunFuelCheck: true,
		DoPlaceTorches:  true,
		TorchLight:      12,
	}
}

func (s *StripmineStrategy) requiredFuel() int {
	return ((s.BranchSpacing + 1) + (s.BranchLength*4 + 1)) * s.BranchPairCount
}

func (s *StripmineStrategy) Run(ctx context.Context, rec *turtle.Record) error {
	if s.PrerunFuelCheck {
		required := s.requiredFuel()
		if err := rec.Refuel(ctx, required); err != nil &&
			!errors.Is(err, turtle.ErrInventoryMissing) && !errors.Is(err, turtle.ErrValueError) {
			return err
		}
		fuel, err := rec.Fuel(ctx)
		if err != nil {
			return err
		}
		if fuel < required {
			return &turtle.HaltFuel{Required: required, Have: fuel}
		}
	}

	doPlaceTorches := s.DoPlaceTorches

	for pair := 0; pair < s.BranchPairCount; pair++ {
		for i := 0; i < s.BranchSpacing+1; i++ {
			if err := fallingBlockCheck(ctx, rec); err != nil {
				return err
			}
			if err := rec.DigMove(ctx, turtle.Forward); err != nil {
				return err
			}
			if err := rec.Dig(ctx, turtle.Up); err != nil {
				return err
			}
		}

		rec.SetHome(rec.Pose().Location)

		if err := rec.TurnLeft(ctx); err != nil {
			return err
		}

		for pass := 0; pass < 2; pass++ {
			for i := 0; i < s.BranchLength; i++ {
				if err := fallingBlockCheck(ctx, rec); err != nil {
					return err
				}
				if err := rec.DigMove(ctx, turtle.Forward); err != nil {
					return err
				}
				if err := rec.Dig(ctx, turtle.Up); err != nil {
					return err
				}
			}

			if err := rec.TurnRight(ctx); err != nil {
				return err
			}
			if err := rec.TurnRight(ctx); err != nil {
				return err
			}

			for _, bad := range turtle.BadBlocks {
				for {
					if err := rec.InventoryDump(ctx, bad, turtle.Up); err != nil {
						break
					}
				}
			}

			if err := s.litReturn(ctx, rec, &doPlaceTorches); err != nil {
				return err
			}
		}

		if err := rec.TurnRight(ctx); err != nil {
			return err
		}
	}

	return processComplete(ctx, rec)
}

// litReturn walks branch_length steps back down an already-mined corridor,
// placing torches overhead as its light countdown reaches the target.
func (s *StripmineStrategy) litReturn(ctx context.Context, rec *turtle.Record, doPlaceTorches *bool) error {
	currentLight := s.TorchLight
	target := 0
	firstTorch := true

	place := func() error {
		if err := attemptTorch(ctx, rec); err != nil {
			if errors.Is(err, turtle.ErrInventoryMissing) {
				*doPlaceTorches = false
				return nil
			}
			return err
		}
		if firstTorch {
			target = -(s.TorchLight + 1)
			firstTorch = false
		}
		return nil
	}

	for step := 0; step < s.BranchLength; step++ {
		rec.SetLightLevel(currentLight)

		if currentLight <= target && *doPlaceTorches {
			if err := place(); err != nil {
				return err
			}
		}

		if step == s.BranchLength-2 && currentLight <= -1 && *doPlaceTorches {
			if err := place(); err != nil {
				return err
			}
		}

		if err := rec.Move(ctx, turtle.Forward); err != nil {
			return err
		}
		currentLight--
	}

	return nil
}

// attemptTorch selects a torch and places it overhead; a missing torch is
// the caller's signal to stop trying for the rest of the run.
func attemptTorch(ctx context.Context, rec *turtle.Record) error {
	if err := rec.InventorySelect(ctx, "torch"); err != nil {
		return err
	}
	return rec.PlaceBlock(ctx, turtle.Up)
}
