package tagging

import (
	"fmt"
	"strconv"

	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

// Hash field names, shared with the FT index schema.
const (
	fieldID        = "id"
	fieldRecordID  = "record_id"
	fieldProduct   = "product"
	fieldCategory  = "category"
	fieldCreatedAt = "created_at"
)

var returnFields = []string{fieldID, fieldRecordID, fieldProduct, fieldCategory, fieldCreatedAt}

// buildHashFields converts a domain Tagging into a flat map[string]string for HSET.
func buildHashFields(tg domtag.Tagging) map[string]string {
	return map[string]string{
		fieldID:        strconv.FormatUint(tg.ID(), 10),
		fieldRecordID:  strconv.FormatUint(tg.RecordID(), 10),
		fieldProduct:   tg.Product(),
		fieldCategory:  tg.Category(),
		fieldCreatedAt: strconv.FormatInt(tg.CreatedAt(), 10),
	}
}

// taggingFromHash converts a flat hash map back into a domain Tagging.
func taggingFromHash(m map[string]string) (domtag.Tagging, error) {
	id, err := strconv.ParseUint(m[fieldID], 10, 64)
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("parse id %q: %w", m[fieldID], err)
	}
	recordID, err := strconv.ParseUint(m[fieldRecordID], 10, 64)
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("parse record_id %q: %w", m[fieldRecordID], err)
	}
	var createdAt int64
	if v := m[fieldCreatedAt]; v != "" {
		createdAt, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domtag.Tagging{}, fmt.Errorf("parse created_at %q: %w", v, err)
		}
	}

	return domtag.Reconstruct(id, recordID, m[fieldProduct], m[fieldCategory], createdAt), nil
}
