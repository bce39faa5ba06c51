package game

import (
	"time"

	"prize_wheel/internal/wheel"

	jsoniter "github.com/json-iterator/go"
)

type SegmentResponse struct {
	Label         string   `json:"label"`
	Image         string   `json:"image"`
	Chance        float64  `json:"chance"`
	DisplayWeight *float64 `json:"display_weight,omitempty"`
}

type WheelConfigResponse struct {
	PointerAngle float64           `json:"pointer_angle"`
	Segments     []SegmentResponse `json:"segments"`
}

// WheelCount принимает и число, и строку. Нечисловое значение => 1
type WheelCount struct {
	Value int
	Set   bool
}

func (c *WheelCount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	// Строка раскодируется с escape-последовательностями, число берется как есть
	var s string
	if err := jsoniter.Unmarshal(b, &s); err != nil {
		s = string(b)
	}
	c.Value = wheel.ParseWheelCount(s)
	c.Set = true
	return nil
}

type CreateGameRequest struct {
	ID         string     `json:"id"`
	WheelCount WheelCount `json:"wheel_count"`
}

type CreateGameResponse struct {
	GameID     string `json:"game_id"`
	URL        string `json:"url"`
	WheelCount int    `json:"wheel_count"`
}

type GameResponse struct {
	ID         string    `json:"id"`
	WheelCount int       `json:"wheel_count"`
	CreatedAt  time.Time `json:"created_at"`
	Played     bool      `json:"played"`
	Results    []string  `json:"results"`
}

type PlayRequest struct {
	CurrentRotation float64 `json:"current_rotation"`
}

type WheelResultResponse struct {
	Label    string   `json:"label"`
	Image    string   `json:"image,omitempty"`
	Index    int      `json:"index"`
	Rotation *float64 `json:"rotation"`
}

type PlayResponse struct {
	Game     GameResponse          `json:"game"`
	Replayed bool                  `json:"replayed"`
	Wheels   []WheelResultResponse `json:"wheels"`
}
