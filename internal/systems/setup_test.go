package systems

import (
	"math/rand"
	"os"
	"strconv"
	"testing"

	"arena-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// fixedRand отдаёт заранее заданные значения Float64 по кругу.
type fixedRand struct {
	vals []float64
	i    int
}

func (f *fixedRand) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func (f *fixedRand) Intn(n int) int {
	return int(f.Float64() * float64(n))
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
