package converter

import (
	"prize_wheel/internal/api/dto/admin"
	"prize_wheel/internal/api/dto/game"
	"prize_wheel/internal/model"
)

func ToStatusResponse(s model.GameStats) admin.StatusResponse {
	return admin.StatusResponse{
		Total:    s.Total,
		Played:   s.Played,
		Unplayed: s.Unplayed,
	}
}

func ToStatsResponse(s model.GameStats) admin.StatsResponse {
	return admin.StatsResponse{
		Total:     s.Total,
		Played:    s.Played,
		Unplayed:  s.Unplayed,
		AvgWheels: s.AvgWheels,
	}
}

func ToListResponse(page model.GamesPage) admin.ListResponse {
	games := make([]game.GameResponse, len(page.Games))
	for i, g := range page.Games {
		games[i] = ToGameResponse(g)
	}
	return admin.ListResponse{
		Games: games,
		Total: page.Total,
	}
}
