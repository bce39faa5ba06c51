package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/repository/game_memory_repo"

	"go.uber.org/zap"
)

func seed(t *testing.T, repo repository.Store, counts ...int) {
	t.Helper()
	ctx := context.Background()
	for i, n := range counts {
		if err := repo.CreateGame(ctx, fmt.Sprintf("g%d", i), n); err != nil {
			t.Fatal(err)
		}
	}
}

func TestStatsRoundsAverage(t *testing.T) {
	ctx := context.Background()
	repo := game_memory_repo.NewGameRepository()
	seed(t, repo, 1, 1, 2)
	if err := repo.MarkPlayed(ctx, "g2", []string{"A", "B"}); err != nil {
		t.Fatal(err)
	}

	s := NewAdminService(repo, zap.NewNop())

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 || stats.Played != 1 || stats.Unplayed != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgWheels != 1.33 {
		t.Errorf("AvgWheels = %v, want 1.33", stats.AvgWheels)
	}

	status, err := s.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Total != 3 || status.AvgWheels != 0 {
		t.Errorf("status = %+v", status)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := NewAdminService(game_memory_repo.NewGameRepository(), zap.NewNop())

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 0 || stats.AvgWheels != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestListLimit(t *testing.T) {
	repo := game_memory_repo.NewGameRepository()
	counts := make([]int, 60)
	for i := range counts {
		counts[i] = 1
	}
	seed(t, repo, counts...)

	s := NewAdminService(repo, zap.NewNop())

	tests := []struct {
		limit int
		want  int
	}{
		{0, 50},
		{-1, 50},
		{10, 10},
		{50, 50},
		{500, 50},
	}
	for _, tt := range tests {
		page, err := s.List(context.Background(), tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Games) != tt.want || page.Total != 60 {
			t.Errorf("List(%d) = %d games, total %d", tt.limit, len(page.Games), page.Total)
		}
	}
}

func TestClean(t *testing.T) {
	ctx := context.Background()
	repo := game_memory_repo.NewGameRepository()
	seed(t, repo, 1, 1, 1)
	if err := repo.MarkPlayed(ctx, "g0", []string{"A"}); err != nil {
		t.Fatal(err)
	}

	s := NewAdminService(repo, zap.NewNop())

	if _, err := s.Clean(ctx, "drop-everything"); !errors.Is(err, ErrUnknownScope) {
		t.Fatalf("expected ErrUnknownScope, got %v", err)
	}

	deleted, err := s.Clean(ctx, model.CleanUnplayed)
	if err != nil || deleted != 2 {
		t.Fatalf("Clean(unplayed) = %d, %v", deleted, err)
	}

	deleted, err = s.Clean(ctx, model.CleanAll)
	if err != nil || deleted != 1 {
		t.Fatalf("Clean(all) = %d, %v", deleted, err)
	}
}
