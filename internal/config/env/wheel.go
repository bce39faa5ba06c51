package env

import (
	"fmt"
	"math"
	"os"

	"prize_wheel/internal/config"
	"prize_wheel/internal/model"
	"prize_wheel/internal/wheel"

	"gopkg.in/yaml.v3"
)

const (
	wheelConfigEnvName = "WHEEL_CONFIG"

	defaultWheelConfigPath = "config/wheel.yaml"
)

type segmentYAML struct {
	Label         string   `yaml:"label"`
	Image         string   `yaml:"image"`
	Chance        float64  `yaml:"chance"`
	DisplayWeight *float64 `yaml:"display_weight"`
}

type wheelYAML struct {
	PointerAngle float64       `yaml:"pointer_angle"`
	Segments     []segmentYAML `yaml:"segments"`
}

type wheelConfig struct {
	segments     []model.Segment
	pointerAngle float64
}

// WheelConfigPath путь к файлу колеса из окружения
func WheelConfigPath() string {
	path := os.Getenv(wheelConfigEnvName)
	if len(path) == 0 {
		return defaultWheelConfigPath
	}
	return path
}

// NewWheelConfigFromYAML читает набор сегментов из файла.
// JSON тоже подходит, это подмножество YAML
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}
	return ParseWheelConfig(data)
}

// ParseWheelConfig разбирает либо {pointer_angle, segments}, либо просто список сегментов.
// Невалидный набор целиком отклоняется
func ParseWheelConfig(data []byte) (config.WheelConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", wheel.ErrInvalidConfig)
	}

	var raw wheelYAML
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&raw.Segments); err != nil {
			return nil, fmt.Errorf("parse wheel config: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse wheel config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: expected a list of segments or a mapping", wheel.ErrInvalidConfig)
	}

	segments := make([]model.Segment, len(raw.Segments))
	for i, s := range raw.Segments {
		segments[i] = model.Segment{
			Label:         s.Label,
			Image:         s.Image,
			Chance:        s.Chance,
			DisplayWeight: s.DisplayWeight,
		}
	}

	if err := wheel.Validate(segments); err != nil {
		return nil, err
	}

	angle, err := normalizeAngle(raw.PointerAngle)
	if err != nil {
		return nil, err
	}

	return &wheelConfig{
		segments:     segments,
		pointerAngle: angle,
	}, nil
}

// normalizeAngle приводит угол указателя к [0,360)
func normalizeAngle(a float64) (float64, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w: pointer_angle must be finite", wheel.ErrInvalidConfig)
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// Для крошечных отрицательных углов a+360 округляется до 360
	if a >= 360 {
		a = 0
	}
	return a, nil
}

// Segments копия набора, порядок сохраняется
func (cfg *wheelConfig) Segments() []model.Segment {
	out := make([]model.Segment, len(cfg.segments))
	copy(out, cfg.segments)
	return out
}

func (cfg *wheelConfig) PointerAngle() float64 {
	return cfg.pointerAngle
}
