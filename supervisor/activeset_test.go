package supervisor

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexfayers/cc-miner/protocol"
	"github.com/alexfayers/cc-miner/turtle"
)

// stubExchanger satisfies turtle.Exchanger without a real connection; the
// active set doesn't care what's behind a record, only that it holds one.
type stubExchanger struct{}

func (stubExchanger) Exchange(_ context.Context, _ string) (protocol.Response, error) {
	return protocol.Response{Type: protocol.KindResponse, Status: true}, nil
}

func TestActiveSetInsertRemove(t *testing.T) {
	Convey("Given an empty active set", t, func() {
		set := NewActiveSet()
		So(set.Len(), ShouldEqual, 0)

		Convey("Insert adds a record and Records reflects it", func() {
			rec := turtle.NewRecord(1, stubExchanger{})
			key := set.Insert(rec)
			So(set.Len(), ShouldEqual, 1)
			So(set.Records(), ShouldContain, rec)

			Convey("Remove drops it back out", func() {
				set.Remove(key)
				So(set.Len(), ShouldEqual, 0)
			})
		})

		Convey("duplicate uids across distinct records are both tracked", func() {
			a := turtle.NewRecord(7, stubExchanger{})
			b := turtle.NewRecord(7, stubExchanger{})
			set.Insert(a)
			set.Insert(b)
			So(set.Len(), ShouldEqual, 2)
		})
	})
}
