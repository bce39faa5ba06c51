package game_redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultPrefix префикс ключей по умолчанию
const DefaultPrefix = "wheel:"

const (
	fieldID         = "id"
	fieldCreatedAt  = "created_at"
	fieldPlayed     = "played"
	fieldWheelCount = "wheel_count"
	fieldResults    = "results"
)

// KEYS[1] ключ игры, KEYS[2] индекс игр по времени создания
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'created_at', ARGV[2], 'played', '0', 'wheel_count', ARGV[3])
redis.call('ZADD', KEYS[2], ARGV[4], ARGV[1])
return 1
`)

// -1 игры нет, 0 уже сыграна, 1 записали
var markPlayedScript = redis.NewScript(`
local played = redis.call('HGET', KEYS[1], 'played')
if not played then
	return -1
end
if played == '1' then
	return 0
end
redis.call('HSET', KEYS[1], 'played', '1', 'results', ARGV[1])
return 1
`)

var statsScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local played, wheels = 0, 0
for _, id in ipairs(ids) do
	local v = redis.call('HMGET', ARGV[1] .. id, 'played', 'wheel_count')
	if v[1] == '1' then
		played = played + 1
	end
	wheels = wheels + (tonumber(v[2]) or 1)
end
return {#ids, played, wheels}
`)

var deleteScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local deleted = 0
for _, id in ipairs(ids) do
	local key = ARGV[1] .. id
	if ARGV[2] ~= '1' or redis.call('HGET', key, 'played') ~= '1' then
		redis.call('DEL', key)
		redis.call('ZREM', KEYS[1], id)
		deleted = deleted + 1
	end
end
return deleted
`)

type repo struct {
	rdb    *redis.Client
	prefix string
}

// NewGameRepository хранит каждую игру в hash, порядок создания в sorted set
func NewGameRepository(rdb *redis.Client, prefix string) repository.Store {
	return &repo{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (r *repo) gamePrefix() string { return r.prefix + "game:" }

func (r *repo) gameKey(id string) string { return r.gamePrefix() + id }

func (r *repo) indexKey() string { return r.prefix + "games" }

func (r *repo) CreateGame(ctx context.Context, id string, wheelCount int) error {
	now := time.Now().UTC()

	created, err := createScript.Run(ctx, r.rdb,
		[]string{r.gameKey(id), r.indexKey()},
		id, now.Format(time.RFC3339Nano), wheelCount, now.UnixMicro(),
	).Int64()
	if err != nil {
		return err
	}
	if created == 0 {
		return model.ErrDuplicateID
	}
	return nil
}

func (r *repo) GetGame(ctx context.Context, id string) (*model.Game, error) {
	fields, err := r.rdb.HGetAll(ctx, r.gameKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrNotFound
	}
	return decodeGame(fields)
}

func (r *repo) MarkPlayed(ctx context.Context, id string, results []string) error {
	encoded, err := json.Marshal(results)
	if err != nil {
		return err
	}

	res, err := markPlayedScript.Run(ctx, r.rdb, []string{r.gameKey(id)}, string(encoded)).Int64()
	if err != nil {
		return err
	}

	switch res {
	case 1:
		return nil
	case 0:
		return model.ErrAlreadyPlayed
	default:
		return model.ErrNotFound
	}
}

func (r *repo) Stats(ctx context.Context) (*model.GameStats, error) {
	vals, err := statsScript.Run(ctx, r.rdb, []string{r.indexKey()}, r.gamePrefix()).Int64Slice()
	if err != nil {
		return nil, err
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("unexpected stats reply: %v", vals)
	}

	stats := &model.GameStats{
		Total:  int(vals[0]),
		Played: int(vals[1]),
	}
	stats.Unplayed = stats.Total - stats.Played
	if stats.Total > 0 {
		stats.AvgWheels = float64(vals[2]) / float64(stats.Total)
	}
	return stats, nil
}

func (r *repo) ListGames(ctx context.Context, limit int) (*model.GamesPage, error) {
	ids, err := r.rdb.ZRevRange(ctx, r.indexKey(), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	pipe := r.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.gameKey(id))
	}
	total := pipe.ZCard(ctx, r.indexKey())
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	page := &model.GamesPage{Total: int(total.Val())}
	for _, cmd := range cmds {
		fields := cmd.Val()
		// Игру могли удалить между ZREVRANGE и HGETALL
		if len(fields) == 0 {
			continue
		}
		g, err := decodeGame(fields)
		if err != nil {
			return nil, err
		}
		page.Games = append(page.Games, *g)
	}
	return page, nil
}

func (r *repo) DeleteGames(ctx context.Context, onlyUnplayed bool) (int64, error) {
	flag := "0"
	if onlyUnplayed {
		flag = "1"
	}
	return deleteScript.Run(ctx, r.rdb, []string{r.indexKey()}, r.gamePrefix(), flag).Int64()
}

func decodeGame(fields map[string]string) (*model.Game, error) {
	g := &model.Game{
		ID:         fields[fieldID],
		Played:     fields[fieldPlayed] == "1",
		WheelCount: model.MinWheelCount,
	}

	if raw, ok := fields[fieldWheelCount]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid wheel count of %s: %w", g.ID, err)
		}
		g.WheelCount = n
	}

	created, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at of %s: %w", g.ID, err)
	}
	g.CreatedAt = created

	if raw, ok := fields[fieldResults]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &g.Results); err != nil {
			return nil, fmt.Errorf("decode results of %s: %w", g.ID, err)
		}
	}
	return g, nil
}
