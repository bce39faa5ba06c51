package wheel

import (
	"math"

	"prize_wheel/internal/model"
)

const (
	fullTurn = 360.0
	// Колесо делает от 5 до 9 лишних оборотов
	minExtraTurns = 5
	maxExtraTurns = 9
)

// RotationOptions параметры отображения
type RotationOptions struct {
	ReferenceAngle float64      // Угол указателя
	RNG            RandomSource // Источник для лишних оборотов, только косметика
}

// Arc угловой сектор сегмента
type Arc struct {
	Start float64
	End   float64
}

// ComputeRotation считает итоговый угол поворота колеса, чтобы выбранный сегмент
// остановился под указателем. Результат всегда больше currentRotation
func ComputeRotation(segments []model.Segment, selected model.Segment, currentRotation float64, opts RotationOptions) (float64, error) {
	idx := IndexOf(segments, selected)
	if idx < 0 {
		return 0, ErrSegmentNotFound
	}

	rng := opts.RNG
	if rng == nil {
		rng = DefaultRNG()
	}

	offset := opts.ReferenceAngle - targetAngle(segments, idx)

	return currentRotation + fullTurn*float64(ExtraTurns(rng)) + offset, nil
}

// ExtraTurns равномерно из [5,9]
func ExtraTurns(rng RandomSource) int {
	n := minExtraTurns + int(math.Floor(rng.Float64()*float64(maxExtraTurns-minExtraTurns+1)))
	if n > maxExtraTurns {
		n = maxExtraTurns
	}
	return n
}

// Layout раскладка сегментов по кругу в порядке набора
func Layout(segments []model.Segment) []Arc {
	spans := spans(segments)
	arcs := make([]Arc, len(spans))

	start := 0.0
	for i, span := range spans {
		arcs[i] = Arc{Start: start, End: start + span}
		start += span
	}
	return arcs
}

// weighted пропорциональная раскладка используется, только если вес задан у всех сегментов
func weighted(segments []model.Segment) bool {
	if len(segments) == 0 {
		return false
	}
	for _, s := range segments {
		if s.DisplayWeight == nil || *s.DisplayWeight <= 0 {
			return false
		}
	}
	return true
}

func spans(segments []model.Segment) []float64 {
	out := make([]float64, len(segments))
	if len(segments) == 0 {
		return out
	}

	if !weighted(segments) {
		for i := range out {
			out[i] = fullTurn / float64(len(segments))
		}
		return out
	}

	total := 0.0
	for _, s := range segments {
		total += *s.DisplayWeight
	}
	for i, s := range segments {
		out[i] = fullTurn * *s.DisplayWeight / total
	}
	return out
}

// targetAngle середина сектора для пропорциональной раскладки,
// передний край сектора для равной
func targetAngle(segments []model.Segment, idx int) float64 {
	arc := Layout(segments)[idx]
	if weighted(segments) {
		return (arc.Start + arc.End) / 2
	}
	return arc.Start
}
