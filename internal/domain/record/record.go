package record

import (
	"strings"

	"github.com/kailas-cloud/recordex/internal/domain"
)

// MaxNameLen is the maximum record name length in characters.
const MaxNameLen = 64

// Record is the record aggregate (immutable value object).
// The id is assigned by the store on insert; a Record built via New carries
// id 0 until persisted.
type Record struct {
	id          uint64
	name        string
	description string
	totalValue  float64
	price       float64
	active      bool
	createdAt   int64
}

// New validates and creates a Record prior to insertion.
// Name: non-empty after trimming, max 64 chars. Price and total value must
// not be negative.
func New(name, description string, totalValue, price float64, active bool) (Record, error) {
	var violations []string
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		violations = append(violations, "name is required")
	}
	if len([]rune(trimmed)) > MaxNameLen {
		violations = append(violations, "name too long (max 64 characters)")
	}
	if totalValue < 0 {
		violations = append(violations, "total_value must not be negative")
	}
	if price < 0 {
		violations = append(violations, "price must not be negative")
	}
	if len(violations) > 0 {
		return Record{}, domain.NewValidationError(violations...)
	}

	return Record{
		name:        trimmed,
		description: strings.TrimSpace(description),
		totalValue:  totalValue,
		price:       price,
		active:      active,
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id uint64, name, description string, totalValue, price float64,
	active bool, createdAt int64,
) Record {
	return Record{
		id:          id,
		name:        name,
		description: description,
		totalValue:  totalValue,
		price:       price,
		active:      active,
		createdAt:   createdAt,
	}
}

// ID returns the store-assigned identifier (0 before insertion).
func (r *Record) ID() uint64 { return r.id }

// Name returns the record name.
func (r *Record) Name() string { return r.name }

// Description returns the optional description.
func (r *Record) Description() string { return r.description }

// TotalValue returns the primary numeric value.
func (r *Record) TotalValue() float64 { return r.totalValue }

// Price returns the secondary numeric field used for band matching.
func (r *Record) Price() float64 { return r.price }

// Active reports whether the selector flag is set.
func (r *Record) Active() bool { return r.active }

// CreatedAt returns the creation timestamp in unix millis.
func (r *Record) CreatedAt() int64 { return r.createdAt }

// WithIdentity returns a copy with the store-assigned id and timestamp set.
func (r *Record) WithIdentity(id uint64, createdAt int64) Record {
	c := *r
	c.id = id
	c.createdAt = createdAt
	return c
}
