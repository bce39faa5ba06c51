package service

import (
	"context"

	"prize_wheel/internal/model"
)

type GameService interface {
	Create(ctx context.Context, req model.CreateGame) (*model.Game, error)
	Get(ctx context.Context, id string) (*model.Game, error)
	RequestPlay(ctx context.Context, id string) (results []string, replayed bool, err error)
	Play(ctx context.Context, id string, currentRotation float64) (*model.PlayOutcome, error)
	Segments() []model.Segment
	PointerAngle() float64
}

type AdminService interface {
	Status(ctx context.Context) (*model.GameStats, error)
	Stats(ctx context.Context) (*model.GameStats, error)
	List(ctx context.Context, limit int) (*model.GamesPage, error)
	Clean(ctx context.Context, scope model.CleanScope) (int64, error)
}
