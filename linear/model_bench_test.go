package linear

import (
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/linreg/dataset"
)

// createBenchmarkData は y = 2x + 3 にノイズを加えた正規化済みデータを生成する
func createBenchmarkData(b *testing.B, n int) *dataset.Dataset {
	b.Helper()
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	d := dataset.New()
	for i := 0; i < n; i++ {
		x := rng.Float64()*200 - 100
		d.Push(x, 2*x+3+(rng.Float64()-0.5))
	}
	if err := d.Normalize(); err != nil {
		b.Fatal(err)
	}
	return d
}

func BenchmarkTrain(b *testing.B) {
	sizes := []struct {
		name string
		n    int
	}{
		{"Small_100", 100},
		{"Medium_1000", 1000},
		{"Large_10000", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			d := createBenchmarkData(b, size.n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m := New(0.1)
				if err := m.Train(d, 100); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGradientStep(b *testing.B) {
	d := createBenchmarkData(b, 10000)
	g := newGradient(d)

	b.ResetTimer()
	var a, c float64
	for i := 0; i < b.N; i++ {
		a, c = g.step(a, c, 0.1)
	}
}
