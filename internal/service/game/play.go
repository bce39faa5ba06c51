package game

import (
	"context"
	"errors"
	"fmt"

	"prize_wheel/internal/model"
	"prize_wheel/internal/wheel"

	"go.uber.org/zap"
)

// RequestPlay первый вызов разыгрывает и сохраняет результаты, следующие возвращают сохраненные
func (s *serv) RequestPlay(ctx context.Context, id string) ([]string, bool, error) {
	g, replayed, err := s.requestPlay(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return g.Results, replayed, nil
}

// Play RequestPlay плюс углы поворота для отрисовки
func (s *serv) Play(ctx context.Context, id string, currentRotation float64) (*model.PlayOutcome, error) {
	g, replayed, err := s.requestPlay(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := &model.PlayOutcome{
		Game:     *g,
		Replayed: replayed,
		Wheels:   make([]model.WheelResult, len(g.Results)),
	}

	for i, label := range g.Results {
		res := model.WheelResult{Label: label, Index: -1}

		// Сегмента могло не остаться в конфиге после его смены
		segment, idx, ok := wheel.FindByLabel(s.segments, label)
		if ok {
			rotation, err := wheel.ComputeRotation(s.segments, segment, currentRotation, wheel.RotationOptions{
				ReferenceAngle: s.pointerAngle,
				RNG:            s.cosmeticRNG,
			})
			if err != nil {
				return nil, err
			}
			res.Image = segment.Image
			res.Index = idx
			res.Rotation = &rotation
		} else {
			s.log.Warn("stored label is not in wheel config", zap.String("game_id", g.ID), zap.String("label", label))
		}

		outcome.Wheels[i] = res
	}

	return outcome, nil
}

func (s *serv) requestPlay(ctx context.Context, id string) (*model.Game, bool, error) {
	// Загружаем игру
	g, err := s.state.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	// Уже сыграна - отдаем сохраненный результат
	if g.Played {
		return g, true, nil
	}

	// Разыгрываем колеса независимо, повторы меток допустимы
	labels := make([]string, g.WheelCount)
	for i := range labels {
		segment, err := wheel.Select(s.segments, s.outcomeRNG)
		if err != nil {
			return nil, false, fmt.Errorf("draw wheel %d: %w", i, err)
		}
		labels[i] = segment.Label
	}

	err = s.state.RecordResult(ctx, id, labels)
	switch {
	case err == nil:
		g.Played = true
		g.Results = labels
		s.log.Info("game played", zap.String("game_id", id), zap.Strings("results", labels))
		return g, false, nil

	case errors.Is(err, model.ErrAlreadyPlayed):
		// Проиграли гонку: результат уже записан другим запросом, читаем его
		s.log.Warn("concurrent play lost, returning committed results", zap.String("game_id", id))
		committed, err := s.state.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return committed, true, nil

	default:
		return nil, false, err
	}
}
