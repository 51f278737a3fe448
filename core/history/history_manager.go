package history

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultLimit = 100

// Entry - запись истории: выражение и его результат
type Entry struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// String renders the entry the way the history list shows it.
func (e Entry) String() string {
	return e.Input + " = " + e.Result
}

// HistoryManager keeps the most recent successful evaluations in memory.
type HistoryManager struct {
	mu         sync.RWMutex
	entries    []Entry
	maxHistory int
	now        func() time.Time
}

func NewHistoryManager() *HistoryManager {
	return NewHistoryManagerWithLimit(DefaultLimit)
}

func NewHistoryManagerWithLimit(maxHistory int) *HistoryManager {
	if maxHistory <= 0 {
		maxHistory = DefaultLimit
	}
	return &HistoryManager{
		entries:    make([]Entry, 0),
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Add - добавление записи в историю
func (hm *HistoryManager) Add(input, result string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Input:     input,
		Result:    result,
		Timestamp: hm.now(),
	}

	hm.mu.Lock()
	defer hm.mu.Unlock()

	hm.entries = append(hm.entries, entry)

	// Ограничиваем размер истории
	if len(hm.entries) > hm.maxHistory {
		hm.entries = append([]Entry(nil), hm.entries[len(hm.entries)-hm.maxHistory:]...)
	}

	return entry
}

// Recent - последние limit записей в порядке добавления; limit <= 0 возвращает всё
func (hm *HistoryManager) Recent(limit int) []Entry {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(hm.entries) {
		start = len(hm.entries) - limit
	}

	out := make([]Entry, len(hm.entries)-start)
	copy(out, hm.entries[start:])
	return out
}

// Search - поиск по выражениям и результатам без учёта регистра
func (hm *HistoryManager) Search(keyword string) []Entry {
	keyword = strings.ToLower(keyword)
	results := make([]Entry, 0)

	for _, entry := range hm.Recent(0) {
		if strings.Contains(strings.ToLower(entry.String()), keyword) {
			results = append(results, entry)
		}
	}

	return results
}

func (hm *HistoryManager) Count() int {
	hm.mu.RLock()
	defer hm.mu.RUnlock()
	return len(hm.entries)
}

// Last - последняя запись, если она есть
func (hm *HistoryManager) Last() (Entry, bool) {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	if len(hm.entries) == 0 {
		return Entry{}, false
	}
	return hm.entries[len(hm.entries)-1], true
}

// Clear drops every entry and reports how many there were.
func (hm *HistoryManager) Clear() int {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	count := len(hm.entries)
	hm.entries = make([]Entry, 0)
	return count
}
