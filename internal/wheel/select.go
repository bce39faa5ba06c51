package wheel

import "prize_wheel/internal/model"

// Select выбирает сегмент по накопленной вероятности.
// Если из-за погрешности float r оказался больше итоговой суммы, возвращается последний сегмент
func Select(segments []model.Segment, rng RandomSource) (model.Segment, error) {
	if len(segments) == 0 {
		return model.Segment{}, ErrEmptyInput
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	r := rng.Float64()

	cumulative := 0.0
	for _, s := range segments {
		cumulative += s.Chance
		if r <= cumulative {
			return s, nil
		}
	}

	return segments[len(segments)-1], nil
}

// IndexOf позиция сегмента в наборе, -1 если его там нет
func IndexOf(segments []model.Segment, segment model.Segment) int {
	for i, s := range segments {
		if s.SameAs(segment) {
			return i
		}
	}
	return -1
}

// FindByLabel первый сегмент с такой меткой
func FindByLabel(segments []model.Segment, label string) (model.Segment, int, bool) {
	for i, s := range segments {
		if s.Label == label {
			return s, i, true
		}
	}
	return model.Segment{}, -1, false
}
