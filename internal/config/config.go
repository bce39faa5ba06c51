package config

import (
	"prize_wheel/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// Поддерживаемые хранилища
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type HTTPConfig interface {
	Address() string
	PublicBaseURL() string
}

type PGConfig interface {
	DSN() string
}

type StorageConfig interface {
	Driver() string
}

type SQLiteConfig interface {
	Path() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type WheelConfig interface {
	Segments() []model.Segment
	PointerAngle() float64
}

type LoggerConfig interface {
	Level() string
}
