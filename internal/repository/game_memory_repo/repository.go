package game_memory_repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
)

type record struct {
	game model.Game
	seq  uint64
}

type repo struct {
	mu    sync.RWMutex
	games map[string]*record
	seq   uint64
	now   func() time.Time
}

// NewGameRepository хранилище в памяти процесса, данные теряются при рестарте
func NewGameRepository() repository.Store {
	return &repo{
		games: make(map[string]*record),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) CreateGame(_ context.Context, id string, wheelCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; ok {
		return model.ErrDuplicateID
	}

	r.seq++
	r.games[id] = &record{
		game: model.Game{
			ID:         id,
			WheelCount: wheelCount,
			CreatedAt:  r.now(),
		},
		seq: r.seq,
	}
	return nil
}

func (r *repo) GetGame(_ context.Context, id string) (*model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.games[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	g := snapshot(rec.game)
	return &g, nil
}

// MarkPlayed проверка и запись под одним локом
func (r *repo) MarkPlayed(_ context.Context, id string, results []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.games[id]
	if !ok {
		return model.ErrNotFound
	}
	if rec.game.Played {
		return model.ErrAlreadyPlayed
	}

	rec.game.Played = true
	rec.game.Results = append([]string(nil), results...)
	return nil
}

func (r *repo) Stats(_ context.Context) (*model.GameStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &model.GameStats{}
	wheels := 0
	for _, rec := range r.games {
		stats.Total++
		wheels += rec.game.WheelCount
		if rec.game.Played {
			stats.Played++
		}
	}
	stats.Unplayed = stats.Total - stats.Played
	if stats.Total > 0 {
		stats.AvgWheels = float64(wheels) / float64(stats.Total)
	}
	return stats, nil
}

// ListGames последние созданные игры первыми
func (r *repo) ListGames(_ context.Context, limit int) (*model.GamesPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]*record, 0, len(r.games))
	for _, rec := range r.games {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	if limit < len(recs) {
		recs = recs[:limit]
	}

	page := &model.GamesPage{
		Games: make([]model.Game, len(recs)),
		Total: len(r.games),
	}
	for i, rec := range recs {
		page.Games[i] = snapshot(rec.game)
	}
	return page, nil
}

func (r *repo) DeleteGames(_ context.Context, onlyUnplayed bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, rec := range r.games {
		if onlyUnplayed && rec.game.Played {
			continue
		}
		delete(r.games, id)
		deleted++
	}
	return deleted, nil
}

func snapshot(g model.Game) model.Game {
	g.Results = append([]string(nil), g.Results...)
	return g
}
