package rng

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// Stream - детерминированный поток псевдослучайных чисел.
// Один и тот же строковый сид всегда дает байт-в-байт одинаковую
// последовательность. Весь генератор мира висит на этом контракте,
// поэтому порядок вызовов тоже часть контракта.
type Stream struct {
	state uint32
}

// New создает поток из строкового сида (FNV-1a -> mulberry32).
func New(seed string) *Stream {
	h := uint32(2166136261)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= 16777619
	}
	return &Stream{state: h}
}

// Next возвращает следующее число в [0, 1).
func (s *Stream) Next() float64 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IntRange возвращает целое в [min, max).
func (s *Stream) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(s.Next()*float64(max-min))
}

// FloatRange возвращает float в [min, max].
func (s *Stream) FloatRange(min, max float64) float64 {
	return min + s.Next()*(max-min)
}

// Chance - бросок Бернулли с вероятностью p в [0, 1].
func (s *Stream) Chance(p float64) bool {
	return s.Next() < p
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ID генерирует детерминированный алфавитно-цифровой идентификатор.
func (s *Stream) ID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[s.IntRange(0, len(idAlphabet))]
	}
	return string(b)
}

// Gaussian - нормальное отклонение через Box-Muller (ровно два вызова Next).
func (s *Stream) Gaussian(mean, stdDev float64) float64 {
	u1 := s.Next()
	u2 := s.Next()
	if u1 < 1e-12 {
		u1 = 1e-12 // ln(0) не нужен никому
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

// Pick выбирает случайный элемент непустого среза.
func Pick[T any](s *Stream, items []T) T {
	return items[s.IntRange(0, len(items))]
}

// Shuffle возвращает перемешанную КОПИЮ среза (Fisher-Yates).
// Входной срез не трогаем.
func Shuffle[T any](s *Stream, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.IntRange(0, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample возвращает k уникальных элементов (shuffle + срез первых k).
// k обрезается по длине входа.
func Sample[T any](s *Stream, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k < 0 {
		k = 0
	}
	return Shuffle(s, items)[:k]
}

// FreshSeed возвращает свежий случайный сид для "случайной игры".
// ВНЕ детерминированного контракта: использует crypto/rand.
func FreshSeed() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random seed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
