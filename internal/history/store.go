package history

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Capacity is the maximum number of retained entries. Recording an entry
// beyond it evicts the oldest.
const Capacity = 10

// DefaultStateFile is the fixed name the sequence is persisted under when no
// path is configured.
const DefaultStateFile = "calculation_history.json"

// timestampLayout renders entry creation times for display.
const timestampLayout = "1/2/2006, 3:04:05 PM"

// Entry is an immutable snapshot of one completed calculation.
type Entry struct {
	ID            int64   `json:"id"`
	StockPrice    float64 `json:"stockPrice"`
	DesiredProfit float64 `json:"profit"`
	Investment    float64 `json:"investment"`
	Timestamp     string  `json:"timestamp"`
}

// Store is a bounded, persisted log of past calculations, ordered
// most-recent-first. The in-memory sequence is the source of truth; every
// successful Record or Clear writes the whole sequence through to the state
// file. Persistence failures are logged, never surfaced: readers always see
// the in-memory state.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	lastID  int64
	logger  *zap.Logger
}

// NewStore returns a Store persisting to path. An empty path uses
// DefaultStateFile.
func NewStore(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = DefaultStateFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load restores the sequence from the state file. Missing or malformed state
// fails open to an empty sequence; startup is never blocked.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history state unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		s.entries = nil
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		s.logger.Warn("history state malformed, starting empty",
			zap.String("path", s.path), zap.Error(err))
		s.entries = nil
		return nil
	}

	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.entries = entries

	for _, e := range entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}

	return s.copyLocked()
}

// Record snapshots a completed calculation: assigns a monotonic id and a
// display timestamp, prepends, truncates to Capacity, and persists.
func (s *Store) Record(stockPrice, desiredProfit, investment float64) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := Entry{
		ID:            id,
		StockPrice:    stockPrice,
		DesiredProfit: desiredProfit,
		Investment:    investment,
		Timestamp:     now.Format(timestampLayout),
	}

	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}

	s.persistLocked()

	return entry
}

// Clear empties the sequence and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []Entry{}
	s.persistLocked()
}

// Entries returns a copy of the current sequence, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Export serializes the current sequence as pretty-printed JSON, suitable
// for download. The store is not mutated.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

func (s *Store) copyLocked() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// persistLocked writes the whole sequence atomically: temp file, sync,
// rename. Errors are logged; the in-memory sequence stays authoritative.
func (s *Store) persistLocked() {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		s.logger.Error("failed to marshal history state", zap.Error(err))
		return
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		s.logger.Error("failed to create temp history state", zap.Error(err))
		return
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		s.logger.Error("failed to write history state", zap.Error(err))
		return
	}

	if err := f.Sync(); err != nil {
		f.Close()
		s.logger.Error("failed to sync history state", zap.Error(err))
		return
	}
	f.Close()

	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("failed to replace history state", zap.Error(err))
	}
}
