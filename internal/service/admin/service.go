package admin

import (
	"context"
	"errors"
	"fmt"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// Сколько игр отдавать в списке по умолчанию и максимум
	defaultListLimit = 50
)

var ErrUnknownScope = errors.New("unknown clean scope")

type serv struct {
	repo repository.GameAdminRepository
	log  *zap.Logger
}

func NewAdminService(repo repository.GameAdminRepository, log *zap.Logger) service.AdminService {
	return &serv{
		repo: repo,
		log:  log,
	}
}

// Status количество игр без среднего
func (s *serv) Status(ctx context.Context) (*model.GameStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.AvgWheels = 0
	return stats, nil
}

// Stats среднее количество колес округляется до 2 знаков
func (s *serv) Stats(ctx context.Context) (*model.GameStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.AvgWheels = decimal.NewFromFloat(stats.AvgWheels).Round(2).InexactFloat64()
	return stats, nil
}

// List последние игры, не больше 50
func (s *serv) List(ctx context.Context, limit int) (*model.GamesPage, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.ListGames(ctx, limit)
}

func (s *serv) Clean(ctx context.Context, scope model.CleanScope) (int64, error) {
	var onlyUnplayed bool
	switch scope {
	case model.CleanAll:
	case model.CleanUnplayed:
		onlyUnplayed = true
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}

	deleted, err := s.repo.DeleteGames(ctx, onlyUnplayed)
	if err != nil {
		return 0, err
	}

	s.log.Info("games deleted", zap.String("scope", string(scope)), zap.Int64("deleted", deleted))
	return deleted, nil
}
