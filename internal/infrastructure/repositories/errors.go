package repositories

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "seller-panel.backend/internal/domain/errors"
)

const pqUniqueViolation = "23505"

// translateWriteError turns unique constraint violations into DuplicateKeyError.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return &domainerrors.DuplicateKeyError{Field: duplicateField(err)}
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key value")
}

// duplicateField derives the offending field from the constraint or column named in err.
func duplicateField(err error) string {
	msg := strings.ToLower(err.Error())
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint != "" {
		msg = strings.ToLower(pqErr.Constraint)
	}
	switch {
	case strings.Contains(msg, "sku"):
		return "sku"
	case strings.Contains(msg, "email"):
		return "email"
	default:
		return "name"
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}

func encodeJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func encodeOptionalJSON(v interface{}, present bool) (*string, error) {
	if !present {
		return nil, nil
	}
	s, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeJSON(raw string, v interface{}) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

func decodeOptionalJSON(raw *string, v interface{}) error {
	if raw == nil {
		return nil
	}
	return decodeJSON(*raw, v)
}
