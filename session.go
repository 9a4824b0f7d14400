package clientstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token returns the stored access token.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.GetString(ctx, KeyAuthToken)
}

// SessionID returns the stored server session identifier.
func (s *Store) SessionID(ctx context.Context) (string, bool) {
	return s.GetString(ctx, KeySessionID)
}

// SetToken stores the access token verbatim. Token format is the API
// layer's concern; nothing is validated here.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.SetString(ctx, KeyAuthToken, token)
}

// RemoveToken deletes the access token.
func (s *Store) RemoveToken(ctx context.Context) error {
	return s.Remove(ctx, KeyAuthToken)
}

// SetSessionID stores the server session identifier.
func (s *Store) SetSessionID(ctx context.Context, id string) error {
	return s.SetString(ctx, KeySessionID, id)
}

// RemoveSessionID deletes the server session identifier.
func (s *Store) RemoveSessionID(ctx context.Context) error {
	return s.Remove(ctx, KeySessionID)
}

// SessionExpiry returns the recorded session horizon. ok is false when no
// session is recorded or the stored value is unreadable.
func (s *Store) SessionExpiry(ctx context.Context) (time.Time, bool) {
	raw, ok := s.GetString(ctx, KeySessionExpiry)
	if !ok {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.metricInc(MetricDeserializationFailure)
		s.report(ctx, "decode", KeySessionExpiry.raw(), fmt.Errorf("%w: %v", ErrNotJSON, err))
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// SetSessionExpiry records the session horizon. A horizon that is not in
// the future is rejected; an already-dead session must never be written.
func (s *Store) SetSessionExpiry(ctx context.Context, expiry time.Time) error {
	if !expiry.After(s.now()) {
		return fmt.Errorf("%w: %s", ErrExpiryNotFuture, expiry.UTC().Format(time.RFC3339))
	}
	return s.setRaw(ctx, KeySessionExpiry.raw(), strconv.FormatInt(expiry.UnixMilli(), 10))
}

// RemoveSessionExpiry deletes the session horizon.
func (s *Store) RemoveSessionExpiry(ctx context.Context) error {
	return s.Remove(ctx, KeySessionExpiry)
}

// BeginSession records a fresh authenticated session. Token, session id and
// expiry are written as a unit; if any write fails the three keys are
// cleared so a partial session is never observable.
func (s *Store) BeginSession(ctx context.Context, rec SessionRecord) error {
	if !rec.ExpiresAt.After(s.now()) {
		return fmt.Errorf("%w: %s", ErrExpiryNotFuture, rec.ExpiresAt.UTC().Format(time.RFC3339))
	}

	writes := []struct {
		key   StorageKey
		value string
	}{
		{KeyAuthToken, rec.Token},
		{KeySessionID, rec.SessionID},
		{KeySessionExpiry, strconv.FormatInt(rec.ExpiresAt.UnixMilli(), 10)},
	}
	for _, w := range writes {
		if err := s.setRaw(ctx, w.key.raw(), w.value); err != nil {
			s.rollbackSession(ctx)
			return err
		}
	}

	s.metricInc(MetricSessionBegin)
	s.report(ctx, "session_begin", KeySessionID.raw(), nil)
	return nil
}

// BeginSessionFromToken derives the session horizon from the access token's
// exp claim and records the session. The token is parsed without signature
// verification: the server already authenticated it, the client only needs
// the local validity window.
func (s *Store) BeginSessionFromToken(ctx context.Context, token, sessionID string) (SessionRecord, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return SessionRecord{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return SessionRecord{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if exp == nil {
		return SessionRecord{}, ErrTokenNoExpiry
	}

	rec := SessionRecord{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: exp.Time,
	}
	if err := s.BeginSession(ctx, rec); err != nil {
		return SessionRecord{}, err
	}
	return rec, nil
}

// IsSessionValid reports whether a session is recorded and its expiry is
// strictly in the future. A session whose expiry equals the current instant
// is already expired. Expired is a read-side judgement only; the stored
// fields stay in place until a lifecycle clear runs.
func (s *Store) IsSessionValid(ctx context.Context) bool {
	expiry, ok := s.SessionExpiry(ctx)
	if !ok {
		return false
	}
	return s.now().Before(expiry)
}

// RememberMe reports the credential-restore preference. Independent of
// whether the current session is still valid.
func (s *Store) RememberMe(ctx context.Context) bool {
	return s.GetBool(ctx, KeyRememberMe)
}

// SetRememberMe records the credential-restore preference.
func (s *Store) SetRememberMe(ctx context.Context, enabled bool) error {
	return s.SetBool(ctx, KeyRememberMe, enabled)
}

func (s *Store) rollbackSession(ctx context.Context) {
	for _, key := range []StorageKey{KeyAuthToken, KeySessionID, KeySessionExpiry} {
		_ = s.deleteRaw(ctx, key.raw())
	}
}
