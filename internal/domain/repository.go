package domain

// HistoryRepository defines the interface for invocation history persistence
type HistoryRepository interface {
	// Create stores a finished history entry
	Create(entry *HistoryEntry) error

	// List returns up to limit entries, newest first. A limit <= 0 returns all entries.
	List(limit int) ([]*HistoryEntry, error)

	// FindByID finds an entry by ID
	FindByID(id string) (*HistoryEntry, error)

	// Clear deletes every entry
	Clear() error

	// GetStats returns outcome counts
	GetStats() (*HistoryStats, error)

	// Close releases the underlying store
	Close() error
}

// HistoryStats represents history statistics
type HistoryStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Cancelled int64 `json:"cancelled"`
}
