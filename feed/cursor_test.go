package feed

import (
	"encoding/base64"
	"testing"

	"github.com/realmkit/realmfeed/model"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, order := range model.AllSortOrder {
		cursor := EncodeCursor("item-42", order)

		id, decodedOrder, err := DecodeCursor(cursor)
		require.NoError(t, err)
		require.Equal(t, "item-42", id)
		require.Equal(t, order, decodedOrder)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		_, _, err := DecodeCursor("!!not-base64!!")
		require.True(t, IsMalformedData(err))
	})

	t.Run("not json", func(t *testing.T) {
		cursor := base64.StdEncoding.EncodeToString([]byte("plain text"))
		_, _, err := DecodeCursor(cursor)
		require.True(t, IsMalformedData(err))
	})

	t.Run("missing identity", func(t *testing.T) {
		cursor := base64.StdEncoding.EncodeToString([]byte(`{"sortOrder":"NEW"}`))
		_, _, err := DecodeCursor(cursor)
		require.True(t, IsMalformedData(err))
	})

	t.Run("missing sort order", func(t *testing.T) {
		cursor := base64.StdEncoding.EncodeToString([]byte(`{"id":"item-1"}`))
		_, _, err := DecodeCursor(cursor)
		require.True(t, IsMalformedData(err))
	})

	t.Run("unknown sort order", func(t *testing.T) {
		cursor := base64.StdEncoding.EncodeToString([]byte(`{"id":"item-1","sortOrder":"SHUFFLED"}`))
		_, _, err := DecodeCursor(cursor)
		require.True(t, IsMalformedData(err))
	})
}
