package game

import (
	"context"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/wheel"
)

// State машина состояний игры: created -> played, второго перехода нет
type State struct {
	repo repository.GameRepository
}

func NewState(repo repository.GameRepository) *State {
	return &State{repo: repo}
}

// Create регистрирует игру с количеством колес, приведенным к [1,100]
func (s *State) Create(ctx context.Context, id string, wheelCount int) error {
	return s.repo.CreateGame(ctx, id, wheel.ClampWheelCount(wheelCount))
}

// RecordResult фиксирует результаты. Количество меток должно совпадать с количеством колес.
// Из нескольких конкурентных вызовов успешен один, остальные получают ErrAlreadyPlayed
func (s *State) RecordResult(ctx context.Context, id string, labels []string) error {
	g, err := s.repo.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if g.Played {
		return model.ErrAlreadyPlayed
	}
	if len(labels) != g.WheelCount {
		return model.ErrInvalidResultShape
	}

	return s.repo.MarkPlayed(ctx, id, labels)
}

func (s *State) Get(ctx context.Context, id string) (*model.Game, error) {
	return s.repo.GetGame(ctx, id)
}
