package game_repo

import (
	"context"
	"errors"
	"fmt"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table      = "games"
	idColumn   = "id"
	createdAt  = "created_at"
	played     = "played"
	wheelCount = "wheel_count"
	resultsCSV = "results_csv"

	uniqueViolation = "23505"
)

type repo struct {
	dbc       *pgxpool.Pool
	txManager trm.Manager
}

func NewGameRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.Store {
	return &repo{
		dbc:       dbc,
		txManager: txManager,
	}
}

// Migrate создает таблицу games. Колонки из поздних версий добавляются, если их нет
func Migrate(ctx context.Context, dbc *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			played BOOLEAN NOT NULL DEFAULT false,
			wheel_count INTEGER NOT NULL DEFAULT 1,
			results_csv TEXT
		)`,
		`ALTER TABLE games ADD COLUMN IF NOT EXISTS wheel_count INTEGER NOT NULL DEFAULT 1`,
		`ALTER TABLE games ADD COLUMN IF NOT EXISTS results_csv TEXT`,
		`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games (created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := dbc.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CreateGame - вставка новой игры. Нарушение первичного ключа => ErrDuplicateID
func (r *repo) CreateGame(ctx context.Context, id string, count int) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(idColumn, wheelCount).
		Values(id, count).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *repo) GetGame(ctx context.Context, id string) (*model.Game, error) {
	// Формируем запрос
	query := sq.Select(idColumn, createdAt, played, wheelCount, resultsCSV).
		From(table).
		Where(sq.Eq{idColumn: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	g, err := scanGame(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// MarkPlayed - условный UPDATE и чтение для разбора неудачи в одной транзакции
func (r *repo) MarkPlayed(ctx context.Context, id string, results []string) error {
	encoded, err := repository.EncodeResults(results)
	if err != nil {
		return err
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		// Формируем запрос
		query := sq.Update(table).
			Set(played, true).
			Set(resultsCSV, encoded).
			Where(sq.Eq{idColumn: id, played: false}).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}

		tag, err := r.conn(txCtx).Exec(txCtx, sqlStr, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		// Ничего не обновили: либо игры нет, либо она уже сыграна
		if _, err := r.GetGame(txCtx, id); err != nil {
			return err
		}
		return model.ErrAlreadyPlayed
	})
}

func (r *repo) Stats(ctx context.Context) (*model.GameStats, error) {
	query := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN played THEN 1 ELSE 0 END), 0)",
		"COALESCE(AVG(wheel_count), 0)::float8",
	).From(table)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	stats := &model.GameStats{}
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&stats.Total, &stats.Played, &stats.AvgWheels)
	if err != nil {
		return nil, err
	}
	stats.Unplayed = stats.Total - stats.Played
	return stats, nil
}

func (r *repo) ListGames(ctx context.Context, limit int) (*model.GamesPage, error) {
	query := sq.Select(idColumn, createdAt, played, wheelCount, resultsCSV).
		From(table).
		OrderBy(createdAt+" DESC", idColumn+" DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &model.GamesPage{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		page.Games = append(page.Games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.conn(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&page.Total); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *repo) DeleteGames(ctx context.Context, onlyUnplayed bool) (int64, error) {
	query := sq.Delete(table).PlaceholderFormat(sq.Dollar)
	if onlyUnplayed {
		query = query.Where(sq.Eq{played: false})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// conn текущая транзакция из контекста или пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var (
		g       model.Game
		results *string
	)
	if err := row.Scan(&g.ID, &g.CreatedAt, &g.Played, &g.WheelCount, &results); err != nil {
		return nil, err
	}
	g.CreatedAt = g.CreatedAt.UTC()

	if results != nil {
		decoded, err := repository.DecodeResults(*results)
		if err != nil {
			return nil, fmt.Errorf("decode results of %s: %w", g.ID, err)
		}
		g.Results = decoded
	}
	return &g, nil
}
