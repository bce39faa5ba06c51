package game_memory_repo

import (
	"context"
	"testing"

	"prize_wheel/internal/repository"
	"prize_wheel/internal/repository/repotest"
)

func TestGameRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Store {
		return NewGameRepository()
	})
}

func TestListGamesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewGameRepository()

	for _, id := range []string{"first", "second", "third"} {
		if err := s.CreateGame(ctx, id, 1); err != nil {
			t.Fatal(err)
		}
	}

	page, err := s.ListGames(ctx, 50)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"third", "second", "first"}
	for i, g := range page.Games {
		if g.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, g.ID, want[i])
		}
	}
}

func TestGetGameReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewGameRepository()

	if err := s.CreateGame(ctx, "g", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkPlayed(ctx, "g", []string{"A"}); err != nil {
		t.Fatal(err)
	}

	g, _ := s.GetGame(ctx, "g")
	g.Results[0] = "changed"

	again, _ := s.GetGame(ctx, "g")
	if again.Results[0] != "A" {
		t.Error("stored results must not be shared with callers")
	}
}
