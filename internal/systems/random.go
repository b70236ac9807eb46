package systems

// Rand - источник случайности систем. *rand.Rand подходит без обёрток,
// в тестах подставляется детерминированная последовательность.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
