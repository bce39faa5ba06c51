package wheel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"prize_wheel/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// minSegments минимальное количество сегментов на колесе
	minSegments = 2
	// chanceTolerance допустимое отклонение суммы вероятностей от 1
	chanceTolerance = 0.001
)

var (
	ErrInvalidConfig   = errors.New("invalid wheel config")
	ErrEmptyInput      = errors.New("no segments provided")
	ErrSegmentNotFound = errors.New("segment is not part of the set")
)

// Validate проверяет набор сегментов:
// не меньше двух сегментов, у каждого есть метка без \r, картинка и вероятность в [0,1],
// сумма вероятностей равна 1 с точностью 0.001
func Validate(segments []model.Segment) error {
	if len(segments) < minSegments {
		return fmt.Errorf("%w: too few segments", ErrInvalidConfig)
	}

	// Сумму считаем в decimal, чтобы сама проверка не зависела от погрешности float
	sum := decimal.Zero
	for i, s := range segments {
		if !wellFormed(s) {
			return fmt.Errorf("%w: malformed segment at index %d", ErrInvalidConfig, i)
		}
		sum = sum.Add(decimal.NewFromFloat(s.Chance))
	}

	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(decimal.NewFromFloat(chanceTolerance)) {
		return fmt.Errorf("%w: chances do not sum to 1 (got %s)", ErrInvalidConfig, sum.String())
	}

	return nil
}

func wellFormed(s model.Segment) bool {
	if s.Label == "" || s.Image == "" {
		return false
	}
	// \r внутри поля results_csv не переживает чтение обратно
	if strings.ContainsRune(s.Label, '\r') {
		return false
	}
	if !finite(s.Chance) || s.Chance < 0 || s.Chance > 1 {
		return false
	}
	if s.DisplayWeight != nil && (!finite(*s.DisplayWeight) || *s.DisplayWeight <= 0) {
		return false
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
