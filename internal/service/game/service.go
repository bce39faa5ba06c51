package game

import (
	"prize_wheel/internal/config"
	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"
	"prize_wheel/internal/wheel"

	"go.uber.org/zap"
)

type serv struct {
	state        *State
	segments     []model.Segment
	pointerAngle float64
	// Исход и лишние обороты берут числа из разных источников
	outcomeRNG  wheel.RandomSource
	cosmeticRNG wheel.RandomSource
	log         *zap.Logger
}

type Option func(*serv)

// WithOutcomeRNG источник для выбора сегментов
func WithOutcomeRNG(rng wheel.RandomSource) Option {
	return func(s *serv) { s.outcomeRNG = rng }
}

// WithCosmeticRNG источник для лишних оборотов колеса
func WithCosmeticRNG(rng wheel.RandomSource) Option {
	return func(s *serv) { s.cosmeticRNG = rng }
}

// NewGameService набор сегментов читается один раз и дальше не меняется
func NewGameService(
	repo repository.GameRepository,
	wheelCfg config.WheelConfig,
	log *zap.Logger,
	opts ...Option,
) service.GameService {
	s := &serv{
		state:        NewState(repo),
		segments:     wheelCfg.Segments(),
		pointerAngle: wheelCfg.PointerAngle(),
		outcomeRNG:   wheel.DefaultRNG(),
		cosmeticRNG:  wheel.DefaultRNG(),
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serv) Segments() []model.Segment {
	out := make([]model.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

func (s *serv) PointerAngle() float64 {
	return s.pointerAngle
}
