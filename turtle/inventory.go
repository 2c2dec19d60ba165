package turtle

import (
	"context"
	"strconv"
	"strings"
)

// InventorySelect scans slots 1..16 for one whose item name contains
// search as a substring, and selects the first match. It fails with
// ErrInventoryMissing if no slot matches.
func (r *Record) InventorySelect(ctx context.Context, search string) error {
	for _, slot := range slotRange {
		resp, err := r.SendCommand(ctx, "return turtle.getItemDetail("+strconv.Itoa(slot)+")")
		if err != nil {
			return err
		}
		if !resp.Status || resp.Data == nil {
			continue
		}

		info, ok := decodeSlotInfo(resp.Data)
		if !ok {
			continue
		}
		if strings.Contains(info.Name, search) {
			_, err := r.SendCommand(ctx, "return turtle.select("+strconv.Itoa(slot)+")")
			return err
		}
	}
	return wrapf(ErrInventoryMissing, "no slot matching %q", search)
}

// Slots reads every occupied inventory slot, keyed by slot number.
func (r *Record) Slots(ctx context.Context) (map[int]InventorySlotInfo, error) {
	occupied := make(map[int]InventorySlotInfo)
	for _, slot := range slotRange {
		resp, err := r.SendCommand(ctx, "return turtle.getItemDetail("+strconv.Itoa(slot)+")")
		if err != nil {
			return nil, err
		}
		if !resp.Status || resp.Data == nil {
			continue
		}
		if info, ok := decodeSlotInfo(resp.Data); ok {
			occupied[slot] = info
		}
	}
	return occupied, nil
}

func decodeSlotInfo(data interface{}) (InventorySlotInfo, bool) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return InventorySlotInfo{}, false
	}
	name, ok := m["name"].(string)
	if !ok {
		return InventorySlotInfo{}, false
	}
	count, err := asInt(m["count"])
	if err != nil {
		return InventorySlotInfo{}, false
	}
	return InventorySlotInfo{Name: name, Count: count}, true
}

// DropItem drops the selected item in direction. FORWARD/UP/DOWN only.
func (r *Record) DropItem(ctx context.Context, dir Direction) error {
	return r.interact(ctx, dir, "drop", "dropDown", "dropUp")
}

// PlaceBlock places the selected item in direction. FORWARD/UP/DOWN only.
func (r *Record) PlaceBlock(ctx context.Context, dir Direction) error {
	return r.interact(ctx, dir, "place", "placeDown", "placeUp")
}

func (r *Record) interact(ctx context.Context, dir Direction, forward, down, up string) error {
	var snippet string
	switch dir {
	case Forward:
		snippet = "return turtle." + forward + "()"
	case Down:
		snippet = "return turtle." + down + "()"
	case Up:
		snippet = "return turtle." + up + "()"
	default:
		return wrapf(ErrCommandMalformed, "bad direction %v", dir)
	}

	resp, err := r.SendCommand(ctx, snippet)
	if err != nil {
		return err
	}
	if !resp.Status {
		return wrapf(ErrInteractionFailed, "%s failed", snippet)
	}
	return nil
}

// InventoryDump selects search and drops it in direction. Either substep's
// failure is re-raised as ErrInventoryMissing.
func (r *Record) InventoryDump(ctx context.Context, search string, dir Direction) error {
	if err := r.InventorySelect(ctx, search); err != nil {
		return wrapf(ErrInventoryMissing, "dump %q: select failed", search)
	}
	if err := r.DropItem(ctx, dir); err != nil {
		return wrapf(ErrInventoryMissing, "dump %q: drop failed", search)
	}
	return nil
}

// Refuel tries each configured fuel block type in turn until fuel exceeds
// target or reaches FuelLimit. target must be in (0, FuelLimit); out-of-range
// targets are rejected with ErrValueError before any command is sent.
func (r *Record) Refuel(ctx context.Context, target int) error {
	if target <= 0 || target >= FuelLimit {
		return wrapf(ErrValueError, "target %d out of range (0, %d)", target, FuelLimit)
	}

	for _, fuelType := range fuelBlocks {
		for {
			if err := r.InventorySelect(ctx, fuelType); err != nil {
				break
			}

			if _, err := r.SendCommand(ctx, "return turtle.refuel()"); err != nil {
				return err
			}

			fuel, err := r.readFuel(ctx)
			if err != nil {
				return err
			}
			if fuel > target || fuel >= FuelLimit {
				return nil
			}
		}
	}

	fuel, err := r.readFuel(ctx)
	if err != nil {
		return err
	}
	if fuel > target || fuel >= FuelLimit {
		return nil
	}
	return wrapf(ErrInventoryMissing, "could not refuel to %d", target)
}

// Fuel reads the agent's current fuel level directly, independent of the
// fuel guard's cached observation.
func (r *Record) Fuel(ctx context.Context) (int, error) {
	return r.readFuel(ctx)
}

func (r *Record) readFuel(ctx context.Context) (int, error) {
	resp, err := r.SendCommand(ctx, "return turtle.getFuelLevel()")
	if err != nil {
		return 0, err
	}
	if !resp.Status {
		return 0, wrapf(ErrCommandProtocol, "fuel read failed")
	}
	return asInt(resp.Data)
}
