package strategy

import (
	"context"
	"strings"

	"github.com/alexfayers/cc-miner/turtle"
)

// DepositStrategy walks an agent home and empties its inventory into a
// chest, keeping back anything it needs to keep working: fuel and torches.
// It supplements the mining drivers for agents whose run ends by handing
// off a full inventory rather than simply returning.
type DepositStrategy struct {
	// ChestDirection is the direction the agent faces home, where a chest
	// is assumed to already be placed.
	ChestDirection turtle.Direction
	// Keep lists item-name substrings that should never be deposited.
	Keep []string
}

// NewDepositStrategy returns a deposit strategy that keeps fuel and
// torches and drops everything else forward, once home.
func NewDepositStrategy() *DepositStrategy {
	return &DepositStrategy{
		ChestDirection: turtle.Forward,
		Keep:           []string{"coal", "torch"},
	}
}

func (d *DepositStrategy) Run(ctx context.Context, rec *turtle.Record) error {
	rec.SetCheckFuel(false)
	if _, err := rec.MoveToLocation(ctx, rec.Home(), false); err != nil {
		return err
	}

	slots, err := rec.Slots(ctx)
	if err != nil {
		return err
	}

	for _, info := range slots {
		if d.shouldKeep(info.Name) {
			continue
		}
		if err := rec.InventorySelect(ctx, info.Name); err != nil {
			continue
		}
		if err := rec.DropItem(ctx, d.ChestDirection); err != nil {
			return err
		}
	}

	return nil
}

func (d *DepositStrategy) shouldKeep(name string) bool {
	for _, keep := range d.Keep {
		if strings.Contains(name, keep) {
			return true
		}
	}
	return false
}
