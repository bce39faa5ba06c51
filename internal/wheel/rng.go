package wheel

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource источник случайных чисел в [0, 1)
// Выбор исхода и косметические обороты колеса берут числа из разных источников
type RandomSource interface {
	Float64() float64
}

// cryptoRNG источник по умолчанию
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// 53 бита => [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG криптостойкий источник, безопасен для конкурентного использования
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG воспроизводимый источник для тестов
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG возвращает воспроизводимый поток PCG
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
