package model

// GameStats агрегаты по всем играм
type GameStats struct {
	Total     int
	Played    int
	Unplayed  int
	AvgWheels float64 // Среднее количество колёс, округлено до 2 знаков
}

// GamesPage последние игры и общее количество
type GamesPage struct {
	Games []Game
	Total int
}

// CleanScope что удалять при очистке
type CleanScope string

const (
	CleanAll      CleanScope = "clean"
	CleanUnplayed CleanScope = "clean-unplayed"
)
