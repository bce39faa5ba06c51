// Package repotest общий набор проверок для реализаций repository.Store
package repotest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"testing"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
)

// Run прогоняет проверки контракта хранилища. newStore должен возвращать пустое хранилище
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("DuplicateID", func(t *testing.T) { testDuplicateID(t, newStore(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newStore(t)) })
	t.Run("MarkPlayedOnce", func(t *testing.T) { testMarkPlayedOnce(t, newStore(t)) })
	t.Run("LabelsRoundTrip", func(t *testing.T) { testLabelsRoundTrip(t, newStore(t)) })
	t.Run("ConcurrentMarkPlayed", func(t *testing.T) { testConcurrentMarkPlayed(t, newStore(t)) })
	t.Run("Admin", func(t *testing.T) { testAdmin(t, newStore(t)) })
}

func testCreateAndGet(t *testing.T, s repository.Store) {
	ctx := context.Background()

	if err := s.CreateGame(ctx, "03-abc", 3); err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}

	g, err := s.GetGame(ctx, "03-abc")
	if err != nil {
		t.Fatalf("GetGame() error: %v", err)
	}
	if g.ID != "03-abc" || g.WheelCount != 3 || g.Played || len(g.Results) != 0 {
		t.Errorf("unexpected game: %+v", g)
	}
	if g.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
}

func testDuplicateID(t *testing.T, s repository.Store) {
	ctx := context.Background()

	if err := s.CreateGame(ctx, "dup", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateGame(ctx, "dup", 2); !errors.Is(err, model.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	g, err := s.GetGame(ctx, "dup")
	if err != nil {
		t.Fatal(err)
	}
	if g.WheelCount != 1 {
		t.Errorf("duplicate create must not overwrite, wheel count = %d", g.WheelCount)
	}
}

func testNotFound(t *testing.T, s repository.Store) {
	ctx := context.Background()

	if _, err := s.GetGame(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetGame() expected ErrNotFound, got %v", err)
	}
	if err := s.MarkPlayed(ctx, "missing", []string{"A"}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("MarkPlayed() expected ErrNotFound, got %v", err)
	}
}

func testMarkPlayedOnce(t *testing.T, s repository.Store) {
	ctx := context.Background()

	if err := s.CreateGame(ctx, "g1", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkPlayed(ctx, "g1", []string{"A", "B"}); err != nil {
		t.Fatalf("MarkPlayed() error: %v", err)
	}
	if err := s.MarkPlayed(ctx, "g1", []string{"C", "C"}); !errors.Is(err, model.ErrAlreadyPlayed) {
		t.Fatalf("second MarkPlayed() expected ErrAlreadyPlayed, got %v", err)
	}

	g, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if !g.Played || !slices.Equal(g.Results, []string{"A", "B"}) {
		t.Errorf("unexpected game after play: %+v", g)
	}
}

func testLabelsRoundTrip(t *testing.T, s repository.Store) {
	ctx := context.Background()
	labels := []string{`1,000 coins`, `"Grand" prize`, "Приз"}

	if err := s.CreateGame(ctx, "g2", len(labels)); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkPlayed(ctx, "g2", labels); err != nil {
		t.Fatal(err)
	}

	g, err := s.GetGame(ctx, "g2")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Results, labels) {
		t.Errorf("results = %q, want %q", g.Results, labels)
	}
}

func testConcurrentMarkPlayed(t *testing.T, s repository.Store) {
	const racers = 16
	ctx := context.Background()

	if err := s.CreateGame(ctx, "race", 1); err != nil {
		t.Fatal(err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		others  []error
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			label := fmt.Sprintf("L%d", i)
			err := s.MarkPlayed(ctx, "race", []string{label})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, label)
				return
			}
			if !errors.Is(err, model.ErrAlreadyPlayed) {
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	if len(others) != 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if len(winners) != 1 {
		t.Fatalf("expected exactly one winner, got %v", winners)
	}

	g, err := s.GetGame(ctx, "race")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Results, winners) {
		t.Errorf("stored results %q differ from winner %q", g.Results, winners)
	}
}

func testAdmin(t *testing.T, s repository.Store) {
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 0 || stats.AvgWheels != 0 {
		t.Errorf("empty store stats = %+v", stats)
	}

	for i, n := range []int{1, 2, 3} {
		if err := s.CreateGame(ctx, fmt.Sprintf("a%d", i), n); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.MarkPlayed(ctx, "a0", []string{"A"}); err != nil {
		t.Fatal(err)
	}

	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 || stats.Played != 1 || stats.Unplayed != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if math.Abs(stats.AvgWheels-2) > 1e-9 {
		t.Errorf("AvgWheels = %v, want 2", stats.AvgWheels)
	}

	page, err := s.ListGames(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Games) != 2 || page.Total != 3 {
		t.Errorf("ListGames(2) = %d games, total %d", len(page.Games), page.Total)
	}

	deleted, err := s.DeleteGames(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("DeleteGames(unplayed) = %d, want 2", deleted)
	}
	if _, err := s.GetGame(ctx, "a0"); err != nil {
		t.Errorf("played game must survive unplayed cleanup: %v", err)
	}

	deleted, err = s.DeleteGames(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("DeleteGames(all) = %d, want 1", deleted)
	}

	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 0 {
		t.Errorf("stats after cleanup = %+v", stats)
	}
}
