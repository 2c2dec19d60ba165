// Package strategy implements the pluggable mining drivers that sequence
// the turtle package's primitives into an end-to-end run: a coroutine that
// receives an agent record and drives it to completion, halt, or error.
package strategy

import (
	"context"
	"strings"

	"github.com/alexfayers/cc-miner/turtle"
)

// Strategy drives one agent through a complete mining plan. Run returns nil
// on completion, one of turtle's halt errors on a normal early termination
// (checked with turtle.IsHalt), or any other error on an unrecoverable
// failure.
type Strategy interface {
	Run(ctx context.Context, rec *turtle.Record) error
}

// processComplete is the shared tail of every strategy: disable the fuel
// guard (the return plan must not recurse into it) and walk home.
func processComplete(ctx context.Context, rec *turtle.Record) error {
	rec.SetCheckFuel(false)
	_, err := rec.MoveToLocation(ctx, rec.Home(), false)
	return err
}

// fallingBlockCheck clears unstable terrain ahead before advancing under
// it: repeatedly inspect forward and dig while the reported block is
// gravel or sand.
func fallingBlockCheck(ctx context.Context, rec *turtle.Record) error {
	for {
		data, err := rec.Inspect(ctx, turtle.Forward)
		if err != nil {
			return err
		}
		name, _ := data["name"].(string)
		if !strings.Contains(name, "gravel") && !strings.Contains(name, "sand") {
			return nil
		}
		if err := rec.Dig(ctx, turtle.Forward); err != nil {
			return err
		}
	}
}
