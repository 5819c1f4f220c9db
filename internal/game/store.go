package game

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store owns every live Session, keyed by room identifier. Roster changes go
// through the store so that a session is present in the map exactly when its
// roster is non-empty; no other component retains a session past eviction.
type Store struct {
	mu       sync.Mutex
	src      Source
	logger   *zap.Logger
	sessions map[string]*Session
}

// NewStore creates an empty Store.
//
// Precondition: src and logger must be non-nil.
func NewStore(src Source, logger *zap.Logger) *Store {
	return &Store{
		src:      src,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Join adds connID to the room, creating and seeding the session on first
// join to an unknown room identifier. Returns ErrRoomFull without any state
// change when the roster already holds MaxPlayers.
//
// Postcondition: On success the returned session holds connID and the
// snapshot reflects the post-join state.
func (st *Store) Join(roomID, connID string) (*Session, JoinSnapshot, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := st.getOrCreateLocked(roomID)
	snap, err := sess.join(connID)
	if err != nil {
		return nil, JoinSnapshot{}, err
	}

	st.logger.Debug("player joined",
		zap.String("room", roomID),
		zap.String("conn", connID),
		zap.Int("occupancy", snap.Count),
	)
	return sess, snap, nil
}

// GetOrCreate returns the session for roomID, creating and seeding it when
// unknown. Creation is serialized under the store lock: two concurrent calls
// for the same previously-unknown room always observe the same session.
func (st *Store) GetOrCreate(roomID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.getOrCreateLocked(roomID)
}

func (st *Store) getOrCreateLocked(roomID string) *Session {
	sess, exists := st.sessions[roomID]
	if !exists {
		sess = newSession(roomID, st.src)
		st.sessions[roomID] = sess
		st.logger.Info("room created", zap.String("room", roomID))
	}
	return sess
}

// Leave removes connID from the room, discarding its hand. When the roster
// empties the session is evicted and its state is gone; a later join to the
// same room identifier starts fresh. Idempotent: unknown rooms and
// connections report ok=false.
func (st *Store) Leave(roomID, connID string) (counts []HandCount, evicted bool, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, exists := st.sessions[roomID]
	if !exists {
		return nil, false, false
	}

	counts, empty := sess.leave(connID)
	if empty {
		delete(st.sessions, roomID)
		st.logger.Info("room evicted", zap.String("room", roomID))
		return counts, true, true
	}

	st.logger.Debug("player left",
		zap.String("room", roomID),
		zap.String("conn", connID),
	)
	return counts, false, true
}

// Get returns the live session for roomID, if any.
func (st *Store) Get(roomID string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, exists := st.sessions[roomID]
	return sess, exists
}

// Remove evicts roomID regardless of occupancy. Idempotent.
func (st *Store) Remove(roomID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, exists := st.sessions[roomID]; exists {
		delete(st.sessions, roomID)
		st.logger.Info("room removed", zap.String("room", roomID))
	}
}

// Len returns the number of live rooms.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// RoomInfo describes one live room for the listing page.
type RoomInfo struct {
	ID        string
	Occupancy int
}

// Snapshot returns all live rooms sorted by identifier.
func (st *Store) Snapshot() []RoomInfo {
	st.mu.Lock()
	defer st.mu.Unlock()

	rooms := make([]RoomInfo, 0, len(st.sessions))
	for id, sess := range st.sessions {
		rooms = append(rooms, RoomInfo{ID: id, Occupancy: sess.Occupancy()})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}
