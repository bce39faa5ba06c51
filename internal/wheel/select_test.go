package wheel

import (
	"errors"
	"testing"

	"prize_wheel/internal/model"
)

// fixedRNG всегда возвращает одно и то же значение
type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

func TestSelectEmpty(t *testing.T) {
	if _, err := Select(nil, NewSeededRNG(1)); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSelectCumulativeRanges(t *testing.T) {
	segments := exampleSet()

	tests := []struct {
		r    float64
		want string
	}{
		{0, "A"},
		{0.25, "A"},
		{0.5, "A"}, // граница включается в предыдущий сегмент
		{0.51, "B"},
		{0.79, "B"},
		{0.81, "C"},
		{0.999, "C"},
	}

	for _, tt := range tests {
		got, err := Select(segments, fixedRNG(tt.r))
		if err != nil {
			t.Fatalf("Select(r=%v) error: %v", tt.r, err)
		}
		if got.Label != tt.want {
			t.Errorf("Select(r=%v) = %s, want %s", tt.r, got.Label, tt.want)
		}
	}
}

func TestSelectDriftFallsBackToLast(t *testing.T) {
	segments := []model.Segment{
		{Label: "A", Image: "a", Chance: 0.4999},
		{Label: "B", Image: "b", Chance: 0.5},
	}

	got, err := Select(segments, fixedRNG(0.99995))
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got.Label != "B" {
		t.Fatalf("expected fallback to last segment, got %s", got.Label)
	}
}

func TestSelectSeededIsReproducible(t *testing.T) {
	segments := exampleSet()
	a := NewSeededRNG(7)
	b := NewSeededRNG(7)

	for i := 0; i < 1000; i++ {
		x, _ := Select(segments, a)
		y, _ := Select(segments, b)
		if x.Label != y.Label {
			t.Fatalf("draw %d differs: %s vs %s", i, x.Label, y.Label)
		}
	}
}

func TestSelectFrequency(t *testing.T) {
	const n = 100000
	segments := []model.Segment{
		{Label: "low", Image: "l", Chance: 0.3},
		{Label: "high", Image: "h", Chance: 0.7},
	}
	rng := NewSeededRNG(42)

	counts := map[string]int{}
	for i := 0; i < n; i++ {
		s, err := Select(segments, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[s.Label]++
	}

	for _, s := range segments {
		freq := float64(counts[s.Label]) / n
		if diff := freq - s.Chance; diff > 0.01 || diff < -0.01 {
			t.Errorf("freq(%s)=%f not close to %f", s.Label, freq, s.Chance)
		}
	}
}

func TestIndexOf(t *testing.T) {
	segments := exampleSet()

	if idx := IndexOf(segments, segments[2]); idx != 2 {
		t.Errorf("IndexOf(C) = %d, want 2", idx)
	}

	// Та же метка, но другая вероятность => другой сегмент
	other := model.Segment{Label: "B", Image: "/img/b.png", Chance: 0.9}
	if idx := IndexOf(segments, other); idx != -1 {
		t.Errorf("IndexOf(foreign) = %d, want -1", idx)
	}
}

func TestFindByLabel(t *testing.T) {
	segments := exampleSet()

	s, idx, ok := FindByLabel(segments, "B")
	if !ok || idx != 1 || s.Image != "/img/b.png" {
		t.Errorf("FindByLabel(B) = %+v, %d, %v", s, idx, ok)
	}
	if _, idx, ok := FindByLabel(segments, "Z"); ok || idx != -1 {
		t.Errorf("FindByLabel(Z) = %d, %v; want -1, false", idx, ok)
	}
}
