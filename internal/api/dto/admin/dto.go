package admin

import "prize_wheel/internal/api/dto/game"

type StatusResponse struct {
	Total    int `json:"total"`
	Played   int `json:"played"`
	Unplayed int `json:"unplayed"`
}

type StatsResponse struct {
	Total     int     `json:"total"`
	Played    int     `json:"played"`
	Unplayed  int     `json:"unplayed"`
	AvgWheels float64 `json:"avg_wheels"`
}

type ListResponse struct {
	Games []game.GameResponse `json:"games"`
	Total int                 `json:"total"`
}

type CleanResponse struct {
	Deleted int64 `json:"deleted"`
}
