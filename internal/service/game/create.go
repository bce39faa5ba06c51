package game

import (
	"context"
	"strings"

	"prize_wheel/internal/model"
	"prize_wheel/internal/wheel"

	"go.uber.org/zap"
)

// Create создает игру. Без ID генерируется новый с количеством колес в префиксе,
// без количества колес оно берется из префикса переданного ID
func (s *serv) Create(ctx context.Context, req model.CreateGame) (*model.Game, error) {
	id := strings.TrimSpace(req.ID)
	count := req.WheelCount

	switch {
	case id == "":
		count = wheel.ClampWheelCount(count)
		id = wheel.NewGameID(count)
	case count == 0:
		count = wheel.WheelCountFromID(id)
	}

	// Повторять с другим ID не пытаемся, дубликат отдаем вызывающему
	if err := s.state.Create(ctx, id, count); err != nil {
		return nil, err
	}

	g, err := s.state.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("game created", zap.String("game_id", g.ID), zap.Int("wheel_count", g.WheelCount))
	return g, nil
}

func (s *serv) Get(ctx context.Context, id string) (*model.Game, error) {
	return s.state.Get(ctx, id)
}
