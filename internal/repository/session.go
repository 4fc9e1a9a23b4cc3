package repository

import (
	"sync"
	"time"

	"github.com/velhalabs/velha-bot/internal/entity"
)

// SessionRepository is the sole owner of the playerID -> session map:
// creation, replacement, deletion and the idle sweep all go through it.
type SessionRepository interface {
	GetOrCreate(playerID int64) *entity.Session
	Replace(playerID int64) *entity.Session
	Delete(playerID int64)
	Len() int
	SweepIdle(maxIdle time.Duration) int
}

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[int64]*entity.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[int64]*entity.Session),
	}
}

// GetOrCreate returns the player's session, lazily creating one on the
// first event from that player.
func (that *sessionRepository) GetOrCreate(playerID int64) *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	if session, ok := that.sessions[playerID]; ok {
		return session
	}

	session := entity.NewSession(playerID)
	that.sessions[playerID] = session

	return session
}

// Replace discards the player's session and installs a fresh one,
// carrying over the presentation handle so the bot keeps editing the
// same chat message. The old session is never merged into the new one.
func (that *sessionRepository) Replace(playerID int64) *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	fresh := entity.NewSession(playerID)
	if old, ok := that.sessions[playerID]; ok {
		fresh.ChatID = old.ChatID
		fresh.MessageID = old.MessageID
	}
	that.sessions[playerID] = fresh

	return fresh
}

func (that *sessionRepository) Delete(playerID int64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, playerID)
}

// Len reports the number of sessions in memory.
func (that *sessionRepository) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.sessions)
}

// SweepIdle evicts every session idle for longer than maxIdle and
// reports how many were removed. A session whose lock is held by an
// in-flight event is skipped; it is active by definition and the next
// sweep will see its refreshed activity time.
func (that *sessionRepository) SweepIdle(maxIdle time.Duration) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := time.Now()

	evicted := 0
	for playerID, session := range that.sessions {
		if !session.TryLock() {
			continue
		}
		idle := session.IdleFor(now)
		session.Unlock()

		if idle > maxIdle {
			delete(that.sessions, playerID)
			evicted++
		}
	}

	return evicted
}
