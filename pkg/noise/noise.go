package noise

import (
	"crownfall-server/pkg/rng"
	"math"
)

// Field - градиентный шум (Perlin) над непрерывными 2D координатами.
// Таблица перестановок берется из PRNG, поэтому сама форма шума
// определяется сидом.
type Field struct {
	perm [512]int
}

// NewField строит поле, потребляя перестановку из потока r.
func NewField(r *rng.Stream) *Field {
	base := make([]int, 256)
	for i := range base {
		base[i] = i
	}
	shuffled := rng.Shuffle(r, base)

	f := &Field{}
	// Дублируем таблицу, чтобы не брать модуль при индексации
	for i := 0; i < 256; i++ {
		f.perm[i] = shuffled[i]
		f.perm[i+256] = shuffled[i]
	}
	return f
}

// At возвращает значение шума в точке (x, y), в диапазоне [-1, 1].
func (f *Field) At(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := f.perm[f.perm[xi]+yi]
	ab := f.perm[f.perm[xi]+yi+1]
	ba := f.perm[f.perm[xi+1]+yi]
	bb := f.perm[f.perm[xi+1]+yi+1]

	x1 := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	x2 := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)

	return lerp(x1, x2, v)
}

// FBM суммирует octaves слоев с удвоением частоты и затуханием
// амплитуды persistence. Результат нормализован по максимальной
// сумме амплитуд и остается в [-1, 1].
func (f *Field) FBM(x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += f.At(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad выбирает один из 8 градиентов по младшим битам хеша
func grad(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}
