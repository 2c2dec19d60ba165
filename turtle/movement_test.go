package turtle

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexfayers/cc-miner/protocol"
)

func TestMoveHorizontalCoupling(t *testing.T) {
	Convey("Given a record facing north at the origin", t, func() {
		agent := alwaysSuccess()
		rec := NewRecord(1, agent)
		rec.SetCheckFuel(false)
		ctx := context.Background()

		Convey("move(FORWARD) changes only z, never y or bearing", func() {
			So(rec.Move(ctx, Forward), ShouldBeNil)
			pose := rec.Pose()
			So(pose.Location, ShouldResemble, Location{X: 0, Y: 0, Z: -1})
			So(pose.Bearing, ShouldEqual, North)
		})

		Convey("move(FORWARD) then move(BACK) returns to the original pose", func() {
			So(rec.Move(ctx, Forward), ShouldBeNil)
			So(rec.Move(ctx, Back), ShouldBeNil)
			So(rec.Pose(), ShouldResemble, Pose{Location: Location{}, Bearing: North})
		})

		Convey("move(UP)/move(DOWN) changes only y", func() {
			So(rec.Move(ctx, Up), ShouldBeNil)
			So(rec.Pose().Location, ShouldResemble, Location{X: 0, Y: 1, Z: 0})
			So(rec.Move(ctx, Down), ShouldBeNil)
			So(rec.Pose().Location, ShouldResemble, Location{})
		})

		Convey("every command frame sent contains \"return\"", func() {
			_ = rec.Move(ctx, Forward)
			_ = rec.Move(ctx, Up)
			for _, cmd := range agent.sent {
				So(cmd, ShouldContainSubstring, "return")
			}
		})
	})
}

func TestBearingInvariants(t *testing.T) {
	Convey("Given a record facing north", t, func() {
		agent := alwaysSuccess()
		rec := NewRecord(1, agent)
		rec.SetCheckFuel(false)
		ctx := context.Background()

		Convey("four right turns return to the original bearing", func() {
			for i := 0; i < 4; i++ {
				So(rec.TurnRight(ctx), ShouldBeNil)
			}
			So(rec.Pose().Bearing, ShouldEqual, North)
		})

		Convey("four left turns return to the original bearing", func() {
			for i := 0; i < 4; i++ {
				So(rec.TurnLeft(ctx), ShouldBeNil)
			}
			So(rec.Pose().Bearing, ShouldEqual, North)
		})

		Convey("turn_left then turn_right is pose-neutral", func() {
			before := rec.Pose()
			So(rec.TurnLeft(ctx), ShouldBeNil)
			So(rec.TurnRight(ctx), ShouldBeNil)
			So(rec.Pose(), ShouldResemble, before)
		})

		Convey("bearing always stays in {0,1,2,3}", func() {
			for i := 0; i < 11; i++ {
				So(rec.TurnRight(ctx), ShouldBeNil)
			}
			b := rec.Pose().Bearing
			So(b, ShouldBeGreaterThanOrEqualTo, 0)
			So(b, ShouldBeLessThanOrEqualTo, 3)
		})
	})
}

func TestDigIfBlock(t *testing.T) {
	Convey("Given a block reported as pickaxe-mineable", t, func() {
		agent := &stubAgent{
			byCommand: []stubRule{
				{contains: "inspect", resp: successResponse(map[string]interface{}{
					"name": "minecraft:stone",
					"tags": map[string]interface{}{
						"minecraft:mineable/pickaxe": true,
					},
				})},
			},
		}
		rec := NewRecord(1, agent)
		ctx := context.Background()

		Convey("dig_if_block digs it", func() {
			So(rec.DigIfBlock(ctx, Forward), ShouldBeNil)
			So(agent.sent, ShouldContain, "return turtle.dig()")
		})
	})

	Convey("Given no mineable block", t, func() {
		agent := &stubAgent{
			byCommand: []stubRule{
				{contains: "inspect", resp: successResponse(map[string]interface{}{
					"name": "minecraft:air",
				})},
			},
		}
		rec := NewRecord(1, agent)
		ctx := context.Background()

		Convey("dig_if_block does not dig", func() {
			So(rec.DigIfBlock(ctx, Forward), ShouldBeNil)
			So(agent.sent, ShouldNotContain, "return turtle.dig()")
		})
	})

	Convey("dig_if_block rejects BACK", t, func() {
		rec := NewRecord(1, alwaysSuccess())
		So(rec.DigIfBlock(context.Background(), Back), ShouldNotBeNil)
	})
}

func successResponse(data interface{}) protocol.Response {
	return protocol.Response{Type: protocol.KindResponse, Status: true, Data: data}
}
