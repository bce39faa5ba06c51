package converter

import (
	"prize_wheel/internal/api/dto/game"
	"prize_wheel/internal/model"
)

func ToCreateGame(req game.CreateGameRequest) model.CreateGame {
	out := model.CreateGame{ID: req.ID}
	if req.WheelCount.Set {
		out.WheelCount = req.WheelCount.Value
	}
	return out
}

// ToCreateGameResponse ссылка на игру строится от baseURL, если он задан
func ToCreateGameResponse(g model.Game, baseURL string) game.CreateGameResponse {
	return game.CreateGameResponse{
		GameID:     g.ID,
		URL:        baseURL + "/game/" + g.ID,
		WheelCount: g.WheelCount,
	}
}

func ToWheelConfigResponse(segments []model.Segment, pointerAngle float64) game.WheelConfigResponse {
	result := game.WheelConfigResponse{
		PointerAngle: pointerAngle,
		Segments:     make([]game.SegmentResponse, len(segments)),
	}
	for i, s := range segments {
		result.Segments[i] = game.SegmentResponse{
			Label:         s.Label,
			Image:         s.Image,
			Chance:        s.Chance,
			DisplayWeight: s.DisplayWeight,
		}
	}
	return result
}

func ToGameResponse(g model.Game) game.GameResponse {
	results := g.Results
	if results == nil {
		results = []string{}
	}
	return game.GameResponse{
		ID:         g.ID,
		WheelCount: g.WheelCount,
		CreatedAt:  g.CreatedAt,
		Played:     g.Played,
		Results:    results,
	}
}

func ToPlayResponse(out model.PlayOutcome) game.PlayResponse {
	return game.PlayResponse{
		Game:     ToGameResponse(out.Game),
		Replayed: out.Replayed,
		Wheels:   toWheelResults(out.Wheels),
	}
}

func toWheelResults(wheels []model.WheelResult) []game.WheelResultResponse {
	result := make([]game.WheelResultResponse, len(wheels))
	for i, w := range wheels {
		result[i] = game.WheelResultResponse{
			Label:    w.Label,
			Image:    w.Image,
			Index:    w.Index,
			Rotation: w.Rotation,
		}
	}
	return result
}
