package pathplanner

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestPathPin(t *testing.T) {
	path := Path[string]{
		MakeTagged[string](TagFree, 0, 0),
		MakeTagged[string](TagFree, 1, 0),
		MakeTagged[string](TagFree, 2, 0),
	}
	test.That(t, path.Pin(0, -1), test.ShouldBeNil)
	test.That(t, path[0].Pinned(), test.ShouldBeTrue)
	test.That(t, path[1].Pinned(), test.ShouldBeFalse)
	test.That(t, path[2].Pinned(), test.ShouldBeTrue)

	err := path.Pin(3)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	test.That(t, path.Pin(-4), test.ShouldNotBeNil)
}

func TestPathCloneAndGeometry(t *testing.T) {
	path := Path[string]{
		{X: 0, Y: 0, Data: "a"},
		{X: 3, Y: 4, Data: "b"},
		{X: 3, Y: 5, Tag: TagPinned, Data: "c"},
	}
	clone := path.Clone()
	clone[1].X = 100
	test.That(t, path[1].X, test.ShouldEqual, 3.)
	test.That(t, Path[string](nil).Clone(), test.ShouldBeNil)

	test.That(t, path.Length(), test.ShouldAlmostEqual, 6.)
	test.That(t, path.Points(), test.ShouldResemble, []r2.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 5}})

	moved := path[2].movedTo(r2.Point{X: 7, Y: 8})
	test.That(t, moved.Data, test.ShouldEqual, "c")
	test.That(t, moved.Pinned(), test.ShouldBeTrue)
	test.That(t, moved.Point(), test.ShouldResemble, r2.Point{X: 7, Y: 8})
}
