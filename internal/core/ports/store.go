package ports

import "go.trai.ch/weld/internal/core/domain"

// TranslationStore persists per-unit translation records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TranslationStore interface {
	// Get retrieves the record for an artifact identifier.
	// Returns nil, nil if not found.
	Get(identifier string) (*domain.TranslationRecord, error)

	// Put stores the record.
	Put(rec domain.TranslationRecord) error

	// All returns every record, sorted by identifier.
	All() ([]domain.TranslationRecord, error)

	// Delete removes the record for an artifact identifier.
	Delete(identifier string) error
}
