package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/storage"
	"github.com/golang-jwt/jwt/v5"
)

// SessionStore is the single source of truth for who is logged in. State is
// either absent or a fully populated session; every transition re-persists
// the durable record.
type SessionStore struct {
	storage storage.Store
	logger  *slog.Logger
	current *models.Session
}

func NewSessionStore(st storage.Store, logger *slog.Logger) *SessionStore {
	return &SessionStore{storage: st, logger: logger}
}

// Restore adopts the persisted session at startup. Malformed or incomplete
// records are dropped and the client proceeds logged out; this never fails.
func (s *SessionStore) Restore(ctx context.Context) {

	var sess models.Session

	found, err := s.storage.Get(ctx, storage.SessionKey, &sess)
	if err != nil {
		s.logger.Warn("discarding malformed session record", slog.String("error", err.Error()))

		_ = s.storage.Delete(ctx, storage.SessionKey)

		return
	}

	if !found {
		return
	}

	if !sess.Complete() {
		s.logger.Warn("discarding incomplete session record", slog.String("username", sess.Username))

		_ = s.storage.Delete(ctx, storage.SessionKey)

		return
	}

	s.warnIfExpired(&sess)

	s.current = &sess

	s.logger.Info("session restored", slog.String("username", sess.Username), slog.String("role", string(sess.Role)))
}

// Login replaces the current session and persists it.
func (s *SessionStore) Login(ctx context.Context, sess models.Session) {

	s.current = &sess

	if err := s.storage.Set(ctx, storage.SessionKey, &sess); err != nil {
		s.logger.Error("failed to persist session", slog.String("error", err.Error()))
	}
}

// Logout clears the session and removes the persisted record. Valid as a
// no-op when already logged out.
func (s *SessionStore) Logout(ctx context.Context) {

	s.current = nil

	if err := s.storage.Delete(ctx, storage.SessionKey); err != nil {
		s.logger.Error("failed to remove session record", slog.String("error", err.Error()))
	}
}

// Current returns the session, or nil when logged out. Callers must treat
// the result as read-only and mutate through Login/Logout.
func (s *SessionStore) Current() *models.Session {
	return s.current
}

func (s *SessionStore) LoggedIn() bool {
	return s.current != nil
}

// Token returns the bearer credential, empty when logged out.
func (s *SessionStore) Token() string {
	if s.current == nil {
		return ""
	}

	return s.current.Token
}

// warnIfExpired decodes the bearer token without verifying it. The backend
// stays the authority; an expired token is adopted anyway so the user sees
// the server's 401 instead of being silently logged out.
func (s *SessionStore) warnIfExpired(sess *models.Session) {

	claims := &models.Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		s.logger.Debug("bearer token is not a JWT, skipping expiry check", slog.String("error", err.Error()))

		return
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		s.logger.Warn("restored session token is expired", slog.String("username", sess.Username),
			slog.Time("expired_at", claims.ExpiresAt.Time))
	}
}
