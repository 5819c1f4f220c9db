package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(rand.New(rand.NewSource(11)), zaptest.NewLogger(t))
}

func TestStoreJoinCreatesRoom(t *testing.T) {
	st := testStore(t)

	sess, snap, err := st.Join("room1", "a")
	require.NoError(t, err)
	assert.Equal(t, "room1", sess.ID())
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, 1, st.Len())
}

func TestStoreJoinExistingRoom(t *testing.T) {
	st := testStore(t)

	first, _, err := st.Join("room1", "a")
	require.NoError(t, err)
	second, snap, err := st.Join("room1", "b")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 1, st.Len())
}

func TestStoreGetOrCreateSerializesCreation(t *testing.T) {
	st := testStore(t)

	sess := st.GetOrCreate("room1")
	assert.Same(t, sess, st.GetOrCreate("room1"))
}

func TestStoreJoinFullRoom(t *testing.T) {
	st := testStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		_, _, err := st.Join("room1", id)
		require.NoError(t, err)
	}

	_, _, err := st.Join("room1", "e")
	assert.ErrorIs(t, err, ErrRoomFull)

	sess, exists := st.Get("room1")
	require.True(t, exists)
	assert.Equal(t, 4, sess.Occupancy())
}

func TestStoreLeaveEvictsEmptyRoom(t *testing.T) {
	st := testStore(t)
	_, _, err := st.Join("room1", "a")
	require.NoError(t, err)

	counts, evicted, ok := st.Leave("room1", "a")
	assert.True(t, ok)
	assert.True(t, evicted)
	assert.Empty(t, counts)
	assert.Equal(t, 0, st.Len())
}

func TestStoreLeaveKeepsOccupiedRoom(t *testing.T) {
	st := testStore(t)
	st.Join("room1", "a")
	st.Join("room1", "b")

	counts, evicted, ok := st.Leave("room1", "a")
	assert.True(t, ok)
	assert.False(t, evicted)
	assert.Equal(t, []HandCount{{ID: "b", Count: 0}}, counts)
	assert.Equal(t, 1, st.Len())
}

func TestStoreLeaveUnknownRoom(t *testing.T) {
	st := testStore(t)
	_, _, ok := st.Leave("nope", "a")
	assert.False(t, ok)
}

func TestStoreEvictionDiscardsState(t *testing.T) {
	// A rejoined room starts fresh: full deck, empty table, reseeded layers.
	st := testStore(t)

	sess, _, err := st.Join("room1", "a")
	require.NoError(t, err)
	drawn, _, ok := sess.Draw("a")
	require.True(t, ok)
	sess.Play("a", drawn[0], 5, 5)
	sess.MoveObject("dots", 0, 999, 999)

	st.Leave("room1", "a")
	require.Equal(t, 0, st.Len())

	fresh, snap, err := st.Join("room1", "a")
	require.NoError(t, err)
	assert.NotSame(t, sess, fresh)
	assert.Equal(t, DeckSize, fresh.DeckLen())
	assert.Empty(t, snap.Table)
	dots, _ := fresh.LayerObjects("dots")
	assert.Equal(t, seedDots(), dots)
}

func TestStoreSequentialDisconnects(t *testing.T) {
	st := testStore(t)
	players := []string{"a", "b", "c", "d"}
	for _, id := range players {
		_, _, err := st.Join("room1", id)
		require.NoError(t, err)
	}

	for i, id := range players {
		_, evicted, ok := st.Leave("room1", id)
		assert.True(t, ok)
		assert.Equal(t, i == len(players)-1, evicted)
	}
	assert.Equal(t, 0, st.Len())
}

func TestStoreRemoveIdempotent(t *testing.T) {
	st := testStore(t)
	st.Join("room1", "a")

	st.Remove("room1")
	assert.Equal(t, 0, st.Len())
	st.Remove("room1")
	assert.Equal(t, 0, st.Len())
}

func TestStoreSnapshotSorted(t *testing.T) {
	st := testStore(t)
	st.Join("beta", "a")
	st.Join("alpha", "b")
	st.Join("alpha", "c")

	snap := st.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, RoomInfo{ID: "alpha", Occupancy: 2}, snap[0])
	assert.Equal(t, RoomInfo{ID: "beta", Occupancy: 1}, snap[1])
}

func TestStoreRoomsIndependent(t *testing.T) {
	st := testStore(t)
	one, _, _ := st.Join("one", "a")
	two, _, _ := st.Join("two", "b")

	one.Draw("a")
	assert.Equal(t, DeckSize-1, one.DeckLen())
	assert.Equal(t, DeckSize, two.DeckLen())
}
