// Package session persists client-side state: the bearer session and
// user preferences. Backed by a single BoltDB file in the config directory.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/oauth2"
)

var (
	sessionBucket = []byte("session")
	prefsBucket   = []byte("prefs")
)

// Keys within the session bucket.
var (
	keyToken  = []byte("token")
	keyUserID = []byte("user_id")
	keyName   = []byte("name")
	keyEmail  = []byte("email")
)

// keyTheme lives in the prefs bucket so it survives sign-out.
var keyTheme = []byte("theme")

// Store wraps BoltDB to persist the session and preferences.
type Store struct {
	db *bolt.DB
}

// Open initializes the state file and ensures the buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(sessionBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession stores the bearer token and user identity after login/signup.
// Name and email are cached display fallbacks only; the profile endpoint
// remains authoritative.
func (s *Store) SaveSession(token *oauth2.Token, userID, name, email string) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put(keyToken, payload); err != nil {
			return err
		}
		if err := b.Put(keyUserID, []byte(userID)); err != nil {
			return err
		}
		if err := b.Put(keyName, []byte(name)); err != nil {
			return err
		}
		return b.Put(keyEmail, []byte(email))
	})
}

// Token returns the stored bearer token, or nil if not signed in.
func (s *Store) Token() *oauth2.Token {
	var token *oauth2.Token
	s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionBucket).Get(keyToken)
		if len(raw) == 0 {
			return nil
		}
		var t oauth2.Token
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil
		}
		token = &t
		return nil
	})
	return token
}

// UserID returns the stored user id, or "" if not signed in.
// This is the synchronous read every protected command uses on start.
func (s *Store) UserID() string {
	return s.get(sessionBucket, keyUserID)
}

// CachedName returns the display name stored at login, or "".
func (s *Store) CachedName() string {
	return s.get(sessionBucket, keyName)
}

// CachedEmail returns the email stored at login, or "".
func (s *Store) CachedEmail() string {
	return s.get(sessionBucket, keyEmail)
}

// ClearSession removes the token and user identity. Preferences are kept.
func (s *Store) ClearSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		for _, k := range [][]byte{keyToken, keyUserID, keyName, keyEmail} {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Theme returns the persisted theme preference, or "" when unset.
func (s *Store) Theme() string {
	return s.get(prefsBucket, keyTheme)
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put(keyTheme, []byte(value))
	})
}

func (s *Store) get(bucket, key []byte) string {
	var val string
	s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucket).Get(key); len(raw) > 0 {
			val = string(raw)
		}
		return nil
	})
	return val
}
