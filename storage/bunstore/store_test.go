package bunstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-store-manager/product"
)

func TestRecordMapping(t *testing.T) {
	t.Run("category survives a round trip", func(t *testing.T) {
		p := product.Product{
			ID:       7,
			Name:     "Effective Java",
			Price:    39.99,
			Quantity: 5,
			Category: product.Book{Author: "Bloch", Genre: "Programming"},
		}

		rec, err := toRecord(p)
		require.NoError(t, err)
		assert.NotEmpty(t, rec.Category)

		got, err := fromRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("generic product stores a null category", func(t *testing.T) {
		rec, err := toRecord(product.Product{ID: 1, Name: "Gift Card", Price: 25, Quantity: 100})
		require.NoError(t, err)
		assert.Nil(t, rec.Category)

		got, err := fromRecord(rec)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	})

	t.Run("stored unknown tag degrades to no category", func(t *testing.T) {
		rec := productRecord{
			ID:       2,
			Name:     "Mystery",
			Price:    1,
			Quantity: 1,
			Category: json.RawMessage(`{"type":"Spaceship","thrust":"lots"}`),
		}

		got, err := fromRecord(rec)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	})
}
