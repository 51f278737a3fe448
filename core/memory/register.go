package memory

import "sync"

// Register - ячейка памяти калькулятора (M+, MR, MC)
type Register struct {
	mu     sync.RWMutex
	value  float64
	stored bool
}

func NewRegister() *Register {
	return &Register{}
}

// Add - прибавление значения к памяти
func (r *Register) Add(v float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value += v
	r.stored = true
	return r.value
}

// Recall returns the stored value, zero when nothing has been added.
func (r *Register) Recall() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

func (r *Register) Stored() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stored
}

// Clear - очистка памяти
func (r *Register) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = 0
	r.stored = false
}
