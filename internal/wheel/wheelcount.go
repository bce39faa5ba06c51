package wheel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"prize_wheel/internal/model"

	"github.com/google/uuid"
)

// ClampWheelCount приводит количество колёс к [1,100]
func ClampWheelCount(n int) int {
	if n < model.MinWheelCount {
		return model.MinWheelCount
	}
	if n > model.MaxWheelCount {
		return model.MaxWheelCount
	}
	return n
}

// ParseWheelCount разбирает количество колёс из строки.
// Дробная часть отбрасывается, пустая или нечисловая строка => 1
func ParseWheelCount(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return ClampWheelCount(n)
	}

	// "3.0", "1e2" и слишком длинные целые
	f, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil && (math.IsNaN(f) || math.IsInf(f, 0)):
		return model.MinWheelCount
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return model.MinWheelCount
	}

	f = math.Trunc(f)
	if f >= model.MaxWheelCount {
		return model.MaxWheelCount
	}
	if f <= model.MinWheelCount {
		return model.MinWheelCount
	}
	return int(f)
}

// WheelCountFromID количество колёс из числового префикса ID ("03-...")
func WheelCountFromID(id string) int {
	prefix, _, found := strings.Cut(id, "-")
	if !found || prefix == "" {
		return model.MinWheelCount
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return model.MinWheelCount
		}
	}
	return ParseWheelCount(prefix)
}

// NewGameID генерирует ID игры с количеством колёс в префиксе
func NewGameID(wheelCount int) string {
	return fmt.Sprintf("%02d-%s", ClampWheelCount(wheelCount), uuid.NewString())
}
