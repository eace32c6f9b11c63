package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	domainerrors "seller-panel.backend/internal/domain/errors"
)

func TestTranslateWriteError_PostgresConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
	}{
		{"idx_variants_sku", "sku"},
		{"idx_sellers_email", "email"},
		{"idx_categories_seller_name", "name"},
		{"idx_variants_product_name", "name"},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			err := translateWriteError(fmt.Errorf("create variant: %w", &pq.Error{Code: "23505", Constraint: tc.constraint}))

			var dup *domainerrors.DuplicateKeyError
			require.True(t, errors.As(err, &dup))
			require.Equal(t, tc.field, dup.Field)
		})
	}
}

func TestTranslateWriteError_PassesOtherErrors(t *testing.T) {
	fk := &pq.Error{Code: "23503", Constraint: "fk_variants_product"}
	require.Same(t, fk, translateWriteError(fk))
	require.NoError(t, translateWriteError(nil))

	plain := errors.New("connection reset")
	require.Equal(t, plain, translateWriteError(plain))
}

func TestTranslateWriteError_SQLiteMessages(t *testing.T) {
	err := translateWriteError(errors.New("UNIQUE constraint failed: variants.sku"))
	var dup *domainerrors.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "sku", dup.Field)
}
