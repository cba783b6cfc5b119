package damage

import (
	"math/rand"
	"testing"
)

func TestEmptyTake(t *testing.T) {
	tr := NewTracker(128, 8)
	if r := tr.Take(); !r.Empty() {
		t.Fatalf("fresh tracker: %+v", r)
	}
}

func TestMarkSingleCell(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.Mark(40, 20)
	want := Region{Column: 40, Page: 2, Width: 1, Pages: 1}
	if got := tr.Take(); got != want {
		t.Fatalf("Take=%+v want %+v", got, want)
	}
	if got := tr.Take(); !got.Empty() {
		t.Fatalf("second Take=%+v, want empty", got)
	}
}

func TestTakeThenMarkMatchesFresh(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.MarkRange(0, 0, 127, 63)
	_ = tr.Take()
	tr.Mark(9, 9)

	fresh := NewTracker(128, 8)
	fresh.Mark(9, 9)
	if a, b := tr.Take(), fresh.Take(); a != b {
		t.Fatalf("after take: %+v, fresh: %+v", a, b)
	}
}

func TestMarkExtendsBothWays(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.Mark(50, 30)
	tr.Mark(10, 50)
	tr.Mark(70, 0)
	want := Region{Column: 10, Page: 0, Width: 61, Pages: 7}
	if got := tr.Take(); got != want {
		t.Fatalf("Take=%+v want %+v", got, want)
	}
}

func TestMarkInsideIsNoop(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.MarkRange(10, 8, 20, 40)
	tr.Mark(15, 20)
	want := Region{Column: 10, Page: 1, Width: 11, Pages: 5}
	if got := tr.Take(); got != want {
		t.Fatalf("Take=%+v want %+v", got, want)
	}
}

func TestMarkClamps(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.Mark(-5, -3)
	tr.Mark(500, 500)
	want := Region{Column: 0, Page: 0, Width: 128, Pages: 8}
	if got := tr.Take(); got != want {
		t.Fatalf("Take=%+v want %+v", got, want)
	}
}

func TestMarkAllAndMerge(t *testing.T) {
	tr := NewTracker(128, 8)
	tr.MarkAll()
	if got := tr.Take(); got != (Region{Width: 128, Pages: 8}) {
		t.Fatalf("MarkAll: %+v", got)
	}

	tr.Mark(100, 60)
	tr.Merge(Region{Column: 2, Page: 1, Width: 3, Pages: 2})
	want := Region{Column: 2, Page: 1, Width: 99, Pages: 7}
	if got := tr.Take(); got != want {
		t.Fatalf("Merge: %+v want %+v", got, want)
	}

	tr.Merge(Region{})
	if got := tr.Take(); !got.Empty() {
		t.Fatalf("merge of empty region: %+v", got)
	}
}

func TestRandomMarksGiveBoundingBox(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		tr := NewTracker(128, 8)
		n := 1 + rng.Intn(20)
		minX, minP, maxX, maxP := 128, 8, -1, -1
		for i := 0; i < n; i++ {
			x, y := rng.Intn(128), rng.Intn(64)
			tr.Mark(x, y)
			minX, maxX = min(minX, x), max(maxX, x)
			minP, maxP = min(minP, y/8), max(maxP, y/8)
		}
		want := Region{Column: minX, Page: minP, Width: maxX - minX + 1, Pages: maxP - minP + 1}
		if got := tr.Take(); got != want {
			t.Fatalf("iter %d: Take=%+v want %+v", iter, got, want)
		}
	}
}
