package server

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/feed"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, statusForError(feed.ErrMalformedData))
	require.Equal(t, http.StatusUnauthorized, statusForError(feed.ErrUnauthorized))
	require.Equal(t, http.StatusNotFound, statusForError(feed.ErrNotFound))
	require.Equal(t, http.StatusForbidden, statusForError(feed.ErrUnsupportedDevnet))
	require.Equal(t, http.StatusInternalServerError, statusForError(errors.New("boom")))
}

func TestStatusForErrorSeesThroughWrapping(t *testing.T) {
	err := errors.Wrap(feed.ErrNotFound, "feed item abc")
	require.Equal(t, http.StatusNotFound, statusForError(err))
}
