package repository

import (
	"context"

	"prize_wheel/internal/model"
)

// GameRepository хранилище игр. MarkPlayed атомарный compare-and-set по флагу played:
// из нескольких конкурентных вызовов для одной игры успешен ровно один
type GameRepository interface {
	CreateGame(ctx context.Context, id string, wheelCount int) error
	GetGame(ctx context.Context, id string) (*model.Game, error)
	MarkPlayed(ctx context.Context, id string, results []string) error
}

// GameAdminRepository административные операции над играми
type GameAdminRepository interface {
	Stats(ctx context.Context) (*model.GameStats, error)
	ListGames(ctx context.Context, limit int) (*model.GamesPage, error)
	DeleteGames(ctx context.Context, onlyUnplayed bool) (int64, error)
}

// Store хранилище целиком, его отдает ServiceProvider
type Store interface {
	GameRepository
	GameAdminRepository
}
