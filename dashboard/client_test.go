package dashboard

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexfayers/cc-miner/turtle"
)

func TestRenderSnapshots(t *testing.T) {
	Convey("Given two agent snapshots", t, func() {
		snapshots := []turtle.Snapshot{
			{UID: 1, Location: turtle.Location{X: 1, Y: 2, Z: 3}, Fuel: 100, LatestCommand: "return turtle.forward() (SUCCESS)"},
			{UID: 2, Location: turtle.Location{}, Fuel: 0, LatestCommand: "", HasLightLevel: true, LightLevel: 9},
		}

		Convey("each renders to a uid-tagged text block matching Snapshot.String", func() {
			views := renderSnapshots(snapshots)
			So(len(views), ShouldEqual, 2)
			So(views[0].UID, ShouldEqual, 1)
			So(views[0].Text, ShouldEqual, snapshots[0].String())
			So(views[1].UID, ShouldEqual, 2)
			So(views[1].Text, ShouldContainSubstring, "Light Level:     9")
		})
	})
}
