package feed

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/model"
)

// cursorPayload is the wire shape of an opaque pagination cursor. The
// embedded sort order ties a cursor to the ordering it was minted under,
// so a cursor can never be replayed against a differently sorted list.
type cursorPayload struct {
	SortOrder model.SortOrder `json:"sortOrder"`
	Id        string          `json:"id"`
}

// EncodeCursor serializes an item identity and the sort order it was
// ranked under into an opaque cursor string.
func EncodeCursor(id string, order model.SortOrder) string {
	raw, err := json.Marshal(cursorPayload{SortOrder: order, Id: id})
	if err != nil {
		// cursorPayload only holds strings, marshalling cannot fail
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor is the inverse of EncodeCursor. It returns ErrMalformedData
// when the payload cannot be parsed or is missing required fields.
func DecodeCursor(cursor string) (string, model.SortOrder, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return "", "", errors.Wrap(ErrMalformedData, "cursor is not valid base64")
	}

	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", "", errors.Wrap(ErrMalformedData, "cursor payload is not valid json")
	}
	if payload.Id == "" {
		return "", "", errors.Wrap(ErrMalformedData, "cursor is missing item identity")
	}
	if !payload.SortOrder.IsValid() {
		return "", "", errors.Wrap(ErrMalformedData, "cursor is missing sort order")
	}

	return payload.Id, payload.SortOrder, nil
}
