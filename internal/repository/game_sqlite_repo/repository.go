package game_sqlite_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const (
	table      = "games"
	idColumn   = "id"
	createdAt  = "created_at"
	played     = "played"
	wheelCount = "wheel_count"
	resultsCSV = "results_csv"

	// Колонка одноколесной схемы: результат писался только сюда
	resultLabel = "result_label"

	// timeLayout сортируется лексикографически и совпадает с CURRENT_TIMESTAMP
	timeLayout = "2006-01-02 15:04:05.000000"
)

type repo struct {
	db *sql.DB
}

// Open открывает файл базы. Одно соединение на процесс, запись в SQLite все равно последовательная
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

func NewGameRepository(db *sql.DB) repository.Store {
	return &repo{
		db: db,
	}
}

// Migrate создает таблицу и добавляет недостающие колонки в старую схему. Повторный вызов ничего не меняет
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		played BOOLEAN DEFAULT 0,
		wheel_count INTEGER DEFAULT 1,
		results_csv TEXT
	)`)
	if err != nil {
		return fmt.Errorf("base migration failed: %w", err)
	}

	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return err
	}

	// Колонки, которых нет в первой версии схемы
	alterMigrations := []struct {
		column string
		stmt   string
	}{
		{wheelCount, `ALTER TABLE games ADD COLUMN wheel_count INTEGER DEFAULT 1`},
		{resultsCSV, `ALTER TABLE games ADD COLUMN results_csv TEXT`},
	}
	for _, m := range alterMigrations {
		if columns[m.column] {
			continue
		}
		if _, err := db.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("alter migration failed: %w", err)
		}
	}

	if columns[resultLabel] {
		if err := backfillResults(ctx, db); err != nil {
			return err
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at DESC)`); err != nil {
		return fmt.Errorf("index migration failed: %w", err)
	}

	return nil
}

// backfillResults переносит result_label сыгранных игр в results_csv.
// Такие игры были одноколесными, поэтому wheel_count выставляется в 1
func backfillResults(ctx context.Context, db *sql.DB) error {
	query := sq.Select(idColumn, resultLabel).
		From(table).
		Where(sq.Eq{played: true}).
		Where(sq.Or{sq.Eq{resultsCSV: nil}, sq.Eq{resultsCSV: ""}}).
		Where(sq.NotEq{resultLabel: nil}).
		Where(sq.NotEq{resultLabel: ""})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("read legacy results: %w", err)
	}

	legacy := make(map[string]string)
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			_ = rows.Close()
			return err
		}
		legacy[id] = label
	}
	// Соединение одно: курсор закрываем до UPDATE
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for id, label := range legacy {
		csv, err := repository.EncodeResults([]string{label})
		if err != nil {
			return err
		}

		sqlStr, args, err := sq.Update(table).
			Set(resultsCSV, csv).
			Set(wheelCount, 1).
			Where(sq.Eq{idColumn: id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("backfill results: %w", err)
		}
	}

	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, name string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", name)
	if err != nil {
		return nil, fmt.Errorf("read table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, err
		}
		columns[column] = true
	}
	return columns, rows.Err()
}

// CreateGame - вставка новой игры. Если id занят, возвращает ErrDuplicateID
func (r *repo) CreateGame(ctx context.Context, id string, count int) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(idColumn, createdAt, played, wheelCount).
		Values(id, time.Now().UTC().Format(timeLayout), false, count).
		Suffix("ON CONFLICT (" + idColumn + ") DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.ErrDuplicateID
	}
	return nil
}

func (r *repo) GetGame(ctx context.Context, id string) (*model.Game, error) {
	// Формируем запрос
	query := sq.Select(idColumn, createdAt, played, wheelCount, resultsCSV).
		From(table).
		Where(sq.Eq{idColumn: id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	g, err := scanGame(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// MarkPlayed - условный UPDATE, выигрывает тот, кто первым перевел played в true
func (r *repo) MarkPlayed(ctx context.Context, id string, results []string) error {
	encoded, err := repository.EncodeResults(results)
	if err != nil {
		return err
	}

	// Формируем запрос
	query := sq.Update(table).
		Set(played, true).
		Set(resultsCSV, encoded).
		Where(sq.Eq{idColumn: id, played: false})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 1 {
		return nil
	}

	// Ничего не обновили: либо игры нет, либо она уже сыграна
	if _, err := r.GetGame(ctx, id); err != nil {
		return err
	}
	return model.ErrAlreadyPlayed
}

func (r *repo) Stats(ctx context.Context) (*model.GameStats, error) {
	query := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN played THEN 1 ELSE 0 END), 0)",
		"COALESCE(AVG(wheel_count), 0)",
	).From(table)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	stats := &model.GameStats{}
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&stats.Total, &stats.Played, &stats.AvgWheels)
	if err != nil {
		return nil, err
	}
	stats.Unplayed = stats.Total - stats.Played
	return stats, nil
}

func (r *repo) ListGames(ctx context.Context, limit int) (*model.GamesPage, error) {
	query := sq.Select(idColumn, createdAt, played, wheelCount, resultsCSV).
		From(table).
		OrderBy(createdAt+" DESC", "rowid DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
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

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&page.Total); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *repo) DeleteGames(ctx context.Context, onlyUnplayed bool) (int64, error) {
	query := sq.Delete(table)
	if onlyUnplayed {
		query = query.Where(sq.Eq{played: false})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*model.Game, error) {
	var (
		g       model.Game
		created string
		count   sql.NullInt64
		results sql.NullString
	)
	if err := row.Scan(&g.ID, &created, &g.Played, &count, &results); err != nil {
		return nil, err
	}

	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	g.CreatedAt = t

	g.WheelCount = model.MinWheelCount
	if count.Valid {
		g.WheelCount = int(count.Int64)
	}

	g.Results, err = repository.DecodeResults(results.String)
	if err != nil {
		return nil, fmt.Errorf("decode results of %s: %w", g.ID, err)
	}
	return &g, nil
}

// parseTime понимает и CURRENT_TIMESTAMP, и время, которое драйвер уже привел к time.Time
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05.999999999", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unexpected created_at value %q", s)
}
