//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"voice-lab/domain"
	apperrors "voice-lab/errors"
)

type ISessionRepository interface {
	Store(session domain.RecordingSession) error
	Get(id uuid.UUID) (domain.RecordingSession, error)
	Update(session domain.RecordingSession) error
	List(limit int) ([]domain.RecordingSession, error)
}

// SessionRepository persists recording sessions in BadgerDB, one
// msgpack value per session.
type SessionRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionRepository(db *badger.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{db: db, log: log}
}

func sessionKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("session:%s", id))
}

// Store persists a new session. A key collision reports
// ErrSessionExists instead of overwriting.
func (r SessionRepository) Store(session domain.RecordingSession) error {
	value, err := msgpack.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", session.ID, err)
	}
	key := sessionKey(session.ID)
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return apperrors.ErrSessionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, value)
	})
}

// Get fetches a session by ID, reporting ErrSessionNotFound for unknown
// IDs.
func (r SessionRepository) Get(id uuid.UUID) (domain.RecordingSession, error) {
	var session domain.RecordingSession
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.ErrSessionNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &session)
		})
	})
	return session, err
}

// Update overwrites an existing session in place. Unknown IDs report
// ErrSessionNotFound rather than creating a record.
func (r SessionRepository) Update(session domain.RecordingSession) error {
	value, err := msgpack.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", session.ID, err)
	}
	key := sessionKey(session.ID)
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.ErrSessionNotFound
			}
			return err
		}
		return txn.Set(key, value)
	})
}

// List returns up to limit sessions in key order. A non-positive limit
// returns everything.
func (r SessionRepository) List(limit int) ([]domain.RecordingSession, error) {
	var sessions []domain.RecordingSession
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("session:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(sessions) >= limit {
				break
			}
			var session domain.RecordingSession
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &session)
			})
			if err != nil {
				r.log.Warn("skipping unreadable session", "key", string(it.Item().Key()), "error", err)
				continue
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	return sessions, err
}
