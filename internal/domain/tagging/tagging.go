package tagging

import (
	"strings"

	"github.com/kailas-cloud/recordex/internal/domain"
)

// Tagging links a record to a product and a category (immutable value object).
// A record may carry any number of taggings; duplicates are legal and are
// collapsed by the matching engine, not the store.
type Tagging struct {
	id        uint64
	recordID  uint64
	product   string
	category  string
	createdAt int64
}

// New validates and creates a Tagging prior to insertion.
// At least one of product/category must be present.
func New(recordID uint64, product, category string) (Tagging, error) {
	var violations []string
	product = strings.TrimSpace(product)
	category = strings.TrimSpace(category)
	if recordID == 0 {
		violations = append(violations, "record id is required")
	}
	if product == "" && category == "" {
		violations = append(violations, "product or category is required")
	}
	if len(violations) > 0 {
		return Tagging{}, domain.NewValidationError(violations...)
	}

	return Tagging{recordID: recordID, product: product, category: category}, nil
}

// Reconstruct creates a Tagging without validation (storage hydration).
func Reconstruct(id, recordID uint64, product, category string, createdAt int64) Tagging {
	return Tagging{id: id, recordID: recordID, product: product, category: category, createdAt: createdAt}
}

// ID returns the store-assigned identifier (0 before insertion).
func (t *Tagging) ID() uint64 { return t.id }

// RecordID returns the tagged record's identifier.
func (t *Tagging) RecordID() uint64 { return t.recordID }

// Product returns the product tag (may be empty).
func (t *Tagging) Product() string { return t.product }

// Category returns the category tag (may be empty).
func (t *Tagging) Category() string { return t.category }

// CreatedAt returns the creation timestamp in unix millis.
func (t *Tagging) CreatedAt() int64 { return t.createdAt }

// WithIdentity returns a copy with the store-assigned id and timestamp set.
func (t *Tagging) WithIdentity(id uint64, createdAt int64) Tagging {
	c := *t
	c.id = id
	c.createdAt = createdAt
	return c
}
