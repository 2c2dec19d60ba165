package strategy

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexfayers/cc-miner/protocol"
	"github.com/alexfayers/cc-miner/turtle"
)

func TestStripmineCompletesAndReturnsHome(t *testing.T) {
	Convey("Given a small stripmine and an agent with ample fuel but no torches", t, func() {
		agent := alwaysSuccess()
		agent.byCommand = []stubRule{
			{contains: "getItemDetail", resp: protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}},
		}
		rec := turtle.NewRecord(1, agent)
		s := &StripmineStrategy{
			BranchSpacing:   1,
			BranchLength:    2,
			BranchPairCount: 1,
			PrerunFuelCheck: false,
			DoPlaceTorches:  true,
			TorchLight:      0,
		}

		Convey("the run completes and the agent returns to the home snapshotted on the trunk", func() {
			err := s.Run(context.Background(), rec)
			So(err, ShouldBeNil)
			So(rec.Pose().Location, ShouldResemble, turtle.Location{X: 0, Y: 0, Z: -2})
			So(rec.CheckFuelEnabled(), ShouldBeFalse)
		})

		Convey("a missing torch disables further placement without failing the run", func() {
			err := s.Run(context.Background(), rec)
			So(err, ShouldBeNil)
		})
	})
}

func TestStripminePurgeGivesUpWithEmptyInventory(t *testing.T) {
	Convey("Given no bad blocks in inventory", t, func() {
		agent := alwaysSuccess()
		agent.byCommand = []stubRule{
			{contains: "getItemDetail", resp: protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}},
		}
		rec := turtle.NewRecord(1, agent)
		s := &StripmineStrategy{
			BranchSpacing:   1,
			BranchLength:    2,
			BranchPairCount: 1,
			PrerunFuelCheck: false,
			DoPlaceTorches:  false,
		}

		Convey("the purge's inventory_dump calls fail fast without ever sending a select frame", func() {
			So(s.Run(context.Background(), rec), ShouldBeNil)
			So(agent.countSent("turtle.select"), ShouldEqual, 0)
		})
	})
}

func TestStripminePrerunFuelHalts(t *testing.T) {
	Convey("Given a stripmine requiring more fuel than the agent has", t, func() {
		agent := alwaysSuccess()
		agent.fuel = 1
		agent.byCommand = []stubRule{
			{contains: "getItemDetail", resp: protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}},
		}
		rec := turtle.NewRecord(1, agent)
		s := NewStripmineStrategy()

		Convey("the pre-run check ignores the refuel failure and halts with HaltFuel", func() {
			err := s.Run(context.Background(), rec)
			So(err, ShouldNotBeNil)
			So(turtle.IsHalt(err), ShouldBeTrue)
		})
	})
}

func TestStripmineRequiredFuelFormula(t *testing.T) {
	Convey("Given the documented defaults", t, func() {
		s := NewStripmineStrategy()
		Convey("required fuel matches the documented formula", func() {
			So(s.requiredFuel(), ShouldEqual, ((s.BranchSpacing+1)+(s.BranchLength*4+1))*s.BranchPairCount)
		})
	})
}
