package record

import (
	"fmt"
	"strconv"

	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// Hash field names, shared with the FT index schema.
const (
	fieldID          = "id"
	fieldName        = "name"
	fieldDescription = "description"
	fieldTotalValue  = "total_value"
	fieldPrice       = "price"
	fieldActive      = "active"
	fieldCreatedAt   = "created_at"

	activeTrue  = "1"
	activeFalse = "0"
)

var returnFields = []string{
	fieldID, fieldName, fieldDescription, fieldTotalValue, fieldPrice, fieldActive, fieldCreatedAt,
}

// buildHashFields converts a domain Record into a flat map[string]string for HSET.
func buildHashFields(rec domrec.Record) map[string]string {
	active := activeFalse
	if rec.Active() {
		active = activeTrue
	}
	return map[string]string{
		fieldID:          strconv.FormatUint(rec.ID(), 10),
		fieldName:        rec.Name(),
		fieldDescription: rec.Description(),
		fieldTotalValue:  strconv.FormatFloat(rec.TotalValue(), 'f', -1, 64),
		fieldPrice:       strconv.FormatFloat(rec.Price(), 'f', -1, 64),
		fieldActive:      active,
		fieldCreatedAt:   strconv.FormatInt(rec.CreatedAt(), 10),
	}
}

// recordFromHash converts a flat hash map back into a domain Record.
func recordFromHash(m map[string]string) (domrec.Record, error) {
	id, err := strconv.ParseUint(m[fieldID], 10, 64)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("parse id %q: %w", m[fieldID], err)
	}
	totalValue, err := strconv.ParseFloat(m[fieldTotalValue], 64)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("parse total_value %q: %w", m[fieldTotalValue], err)
	}
	price, err := strconv.ParseFloat(m[fieldPrice], 64)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("parse price %q: %w", m[fieldPrice], err)
	}
	var createdAt int64
	if v := m[fieldCreatedAt]; v != "" {
		createdAt, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domrec.Record{}, fmt.Errorf("parse created_at %q: %w", v, err)
		}
	}

	return domrec.Reconstruct(
		id,
		m[fieldName],
		m[fieldDescription],
		totalValue,
		price,
		m[fieldActive] == activeTrue,
		createdAt,
	), nil
}
