package web

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GitGRG/dragonshoard/internal/game"
)

func getRooms(t *testing.T, store *game.Store) string {
	t.Helper()
	handler := RoomsHandler(store, zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	return rec.Body.String()
}

func testStore(t *testing.T) *game.Store {
	t.Helper()
	return game.NewStore(rand.New(rand.NewSource(5)), zaptest.NewLogger(t))
}

func TestRoomsPageEmpty(t *testing.T) {
	body := getRooms(t, testStore(t))
	assert.Contains(t, body, "Active Rooms")
	assert.NotContains(t, body, "<li>")
}

func TestRoomsPageListsOccupancy(t *testing.T) {
	store := testStore(t)
	_, _, err := store.Join("tavern", "a")
	require.NoError(t, err)
	_, _, err = store.Join("tavern", "b")
	require.NoError(t, err)

	body := getRooms(t, store)
	assert.Contains(t, body, "tavern")
	assert.Contains(t, body, "(2/4)")
	assert.Contains(t, body, `href="/?room=tavern"`)
	assert.NotContains(t, body, "Full")
}

func TestRoomsPageFullRoom(t *testing.T) {
	store := testStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		_, _, err := store.Join("packed", id)
		require.NoError(t, err)
	}

	body := getRooms(t, store)
	assert.Contains(t, body, "(4/4)")
	assert.Contains(t, body, "Full")
	assert.NotContains(t, body, `href="/?room=packed"`)
}

func TestRoomsPageEscapesRoomID(t *testing.T) {
	store := testStore(t)
	_, _, err := store.Join(`<script>alert(1)</script>`, "a")
	require.NoError(t, err)

	body := getRooms(t, store)
	assert.NotContains(t, body, "<script>alert(1)</script>")
}
