package strategy

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexfayers/cc-miner/protocol"
	"github.com/alexfayers/cc-miner/turtle"
)

func TestDepositKeepsFuelAndTorches(t *testing.T) {
	Convey("Given an inventory of coal, torches, and cobblestone", t, func() {
		agent := alwaysSuccess()
		agent.byCommand = []stubRule{
			{contains: "getItemDetail(1)", resp: protocol.Response{Type: protocol.KindResponse, Status: true,
				Data: map[string]interface{}{"name": "minecraft:coal", "count": float64(3)}}},
			{contains: "getItemDetail(2)", resp: protocol.Response{Type: protocol.KindResponse, Status: true,
				Data: map[string]interface{}{"name": "minecraft:torch", "count": float64(5)}}},
			{contains: "getItemDetail(3)", resp: protocol.Response{Type: protocol.KindResponse, Status: true,
				Data: map[string]interface{}{"name": "minecraft:cobblestone", "count": float64(64)}}},
			{contains: "getItemDetail", resp: protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}},
		}
		rec := turtle.NewRecord(1, agent)
		d := NewDepositStrategy()

		Convey("only the cobblestone slot is selected and dropped", func() {
			err := d.Run(context.Background(), rec)
			So(err, ShouldBeNil)
			So(agent.sent, ShouldContain, "return turtle.select(3)")
			So(agent.sent, ShouldNotContain, "return turtle.select(1)")
			So(agent.sent, ShouldNotContain, "return turtle.select(2)")
			dropCount := agent.countSent("turtle.drop")
			So(dropCount, ShouldEqual, 1)
		})
	})
}

func TestDepositReturnsHomeFirst(t *testing.T) {
	Convey("Given an agent away from home with an empty inventory", t, func() {
		agent := alwaysSuccess()
		agent.byCommand = []stubRule{
			{contains: "getItemDetail", resp: protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}},
		}
		rec := turtle.NewRecord(1, agent)
		rec.SetHome(turtle.Location{X: 2, Y: 0, Z: -1})
		d := NewDepositStrategy()

		Convey("the agent walks home before scanning its inventory", func() {
			err := d.Run(context.Background(), rec)
			So(err, ShouldBeNil)
			So(rec.Pose().Location, ShouldResemble, turtle.Location{X: 2, Y: 0, Z: -1})
		})
	})
}
