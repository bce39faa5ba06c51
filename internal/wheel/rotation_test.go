package wheel

import (
	"errors"
	"math"
	"testing"

	"prize_wheel/internal/model"
)

func equalSet(n int) []model.Segment {
	segments := make([]model.Segment, n)
	for i := range segments {
		segments[i] = model.Segment{
			Label:  string(rune('A' + i)),
			Image:  "img",
			Chance: 1 / float64(n),
		}
	}
	return segments
}

func TestExtraTurnsRange(t *testing.T) {
	tests := []struct {
		r    float64
		want int
	}{
		{0, 5},
		{0.2, 6},
		{0.5, 7},
		{0.999999, 9},
	}
	for _, tt := range tests {
		if got := ExtraTurns(fixedRNG(tt.r)); got != tt.want {
			t.Errorf("ExtraTurns(%v) = %d, want %d", tt.r, got, tt.want)
		}
	}

	rng := NewSeededRNG(3)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := ExtraTurns(rng)
		if n < 5 || n > 9 {
			t.Fatalf("ExtraTurns out of range: %d", n)
		}
		seen[n] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected all of 5..9 to occur, saw %v", seen)
	}
}

func TestComputeRotationLegacyLeadingEdge(t *testing.T) {
	segments := equalSet(3)

	got, err := ComputeRotation(segments, segments[2], 100, RotationOptions{
		ReferenceAngle: 270,
		RNG:            fixedRNG(0.5),
	})
	if err != nil {
		t.Fatalf("ComputeRotation() error: %v", err)
	}

	// 100 + 7*360 + (270 - 240)
	if want := 2650.0; got != want {
		t.Errorf("ComputeRotation() = %v, want %v", got, want)
	}
}

func TestComputeRotationWeightedMidpoint(t *testing.T) {
	segments := []model.Segment{
		{Label: "A", Image: "a", Chance: 0.25, DisplayWeight: weight(1)},
		{Label: "B", Image: "b", Chance: 0.25, DisplayWeight: weight(1)},
		{Label: "C", Image: "c", Chance: 0.5, DisplayWeight: weight(2)},
	}

	got, err := ComputeRotation(segments, segments[2], 0, RotationOptions{RNG: fixedRNG(0)})
	if err != nil {
		t.Fatalf("ComputeRotation() error: %v", err)
	}

	// C занимает [180, 360], середина 270
	if want := 1800.0 - 270.0; got != want {
		t.Errorf("ComputeRotation() = %v, want %v", got, want)
	}
}

func TestComputeRotationSameSegmentDiffersByFullTurns(t *testing.T) {
	segments := equalSet(4)
	selected := segments[1]

	for i := 0; i < 50; i++ {
		r1, err := ComputeRotation(segments, selected, 0, RotationOptions{})
		if err != nil {
			t.Fatal(err)
		}
		r2, err := ComputeRotation(segments, selected, 0, RotationOptions{})
		if err != nil {
			t.Fatal(err)
		}

		if rem := math.Abs(math.Remainder(r1-r2, 360)); rem > 1e-9 {
			t.Fatalf("rotations %v and %v differ by a non-multiple of 360", r1, r2)
		}
		// Сегмент B (передний край 90) должен оказаться под указателем 0
		if rem := math.Abs(math.Remainder(r1+90, 360)); rem > 1e-9 {
			t.Fatalf("rotation %v does not place segment at the pointer", r1)
		}
	}
}

func TestComputeRotationIsMonotonic(t *testing.T) {
	segments := equalSet(6)
	rng := NewSeededRNG(11)

	current := 0.0
	for i := 0; i < 20; i++ {
		next, err := ComputeRotation(segments, segments[i%len(segments)], current, RotationOptions{RNG: rng})
		if err != nil {
			t.Fatal(err)
		}
		if next <= current {
			t.Fatalf("rotation went backwards: %v -> %v", current, next)
		}
		current = next
	}
}

func TestComputeRotationUnknownSegment(t *testing.T) {
	segments := equalSet(3)
	foreign := model.Segment{Label: "Z", Image: "z", Chance: 0.1}

	_, err := ComputeRotation(segments, foreign, 0, RotationOptions{})
	if !errors.Is(err, ErrSegmentNotFound) {
		t.Fatalf("expected ErrSegmentNotFound, got %v", err)
	}
}

func TestLayout(t *testing.T) {
	arcs := Layout(equalSet(4))
	if len(arcs) != 4 {
		t.Fatalf("expected 4 arcs, got %d", len(arcs))
	}
	if arcs[3].Start != 270 || arcs[3].End != 360 {
		t.Errorf("last arc = %+v, want [270, 360]", arcs[3])
	}

	// Вес задан не у всех => равная раскладка
	mixed := equalSet(2)
	mixed[0].DisplayWeight = weight(3)
	arcs = Layout(mixed)
	if arcs[0].End != 180 {
		t.Errorf("mixed weights should fall back to equal spans, got %+v", arcs)
	}
}
