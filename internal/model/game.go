package model

import "time"

const (
	// MinWheelCount минимальное количество колёс в игре
	MinWheelCount = 1
	// MaxWheelCount максимальное количество колёс в игре
	MaxWheelCount = 100
)

// Game одноразовая игровая сессия, доступная по ссылке
// Played == false => Results пустой
// Played == true  => len(Results) == WheelCount
type Game struct {
	ID         string
	WheelCount int
	CreatedAt  time.Time
	Played     bool
	Results    []string // Метки выпавших сегментов, по одной на колесо
}

// CreateGame запрос на создание игры
// ID и WheelCount необязательны: пустой ID генерируется, нулевой WheelCount берётся из префикса ID
type CreateGame struct {
	ID         string
	WheelCount int
}

// WheelResult результат одного колеса для отображения
type WheelResult struct {
	Label    string
	Image    string
	Index    int      // -1, если сегмента уже нет в конфиге
	Rotation *float64 // nil, если сегмент не найден
}

// PlayOutcome результат запроса на игру
type PlayOutcome struct {
	Game     Game
	Replayed bool // true, если результат уже был сохранён ранее
	Wheels   []WheelResult
}
