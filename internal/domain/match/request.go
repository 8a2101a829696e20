package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/recordex/internal/domain"
)

// MaxFilters caps the number of product or category filters per request.
// Longer lists are rejected, never truncated.
const MaxFilters = 3

// Request is a validated value-matching request.
type Request struct {
	value    float64
	products []string
}

// NewRequest validates a value-matching request, enumerating every violation.
func NewRequest(value float64, products []string) (Request, error) {
	var violations []string
	if value == 0 {
		violations = append(violations, "value is required")
	} else if math.IsNaN(value) || math.IsInf(value, 0) {
		violations = append(violations, "value must be finite")
	} else if value < 0 {
		violations = append(violations, "value must be positive")
	}

	if len(products) > MaxFilters {
		violations = append(violations,
			fmt.Sprintf("too many products (max %d)", MaxFilters))
	}
	cleaned := make([]string, 0, len(products))
	for i, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			violations = append(violations,
				fmt.Sprintf("products[%d] must not be empty", i))
			continue
		}
		cleaned = append(cleaned, p)
	}

	if len(violations) > 0 {
		return Request{}, domain.NewValidationError(violations...)
	}
	return Request{value: value, products: cleaned}, nil
}

// Value returns the target value.
func (r *Request) Value() float64 { return r.value }

// Products returns the product filters in request order.
func (r *Request) Products() []string { return r.products }

// CategoryRequest is a validated category-intersection request.
type CategoryRequest struct {
	categories []string
}

// NewCategoryRequest validates a category-intersection request.
// Between 1 and MaxFilters non-empty categories are required.
func NewCategoryRequest(categories []string) (CategoryRequest, error) {
	var violations []string
	if len(categories) == 0 {
		violations = append(violations, "categories are required")
	}
	if len(categories) > MaxFilters {
		violations = append(violations,
			fmt.Sprintf("too many categories (max %d)", MaxFilters))
	}
	cleaned := make([]string, 0, len(categories))
	for i, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			violations = append(violations,
				fmt.Sprintf("categories[%d] must not be empty", i))
			continue
		}
		cleaned = append(cleaned, c)
	}

	if len(violations) > 0 {
		return CategoryRequest{}, domain.NewValidationError(violations...)
	}
	return CategoryRequest{categories: cleaned}, nil
}

// Categories returns the requested category tags in request order.
func (r *CategoryRequest) Categories() []string { return r.categories }
