package clientstore

import (
	"context"
	"errors"
)

// ClearAuth removes the authentication material: access token and user
// profile. Session bookkeeping (session id, expiry), preferences and the
// offline queue are untouched. A failed sub-delete does not stop the rest;
// the joined error reports every key that could not be removed.
func (s *Store) ClearAuth(ctx context.Context) error {
	err := s.removeAll(ctx, KeyAuthToken, KeyUserData)
	s.metricInc(MetricAuthCleared)
	s.report(ctx, "clear_auth", "", err)
	return err
}

// ClearSession is the logout composite: credentials first, then the
// profile, in a fixed order. Device-scoped preferences (theme, biometric
// flag, push token) and the offline queue deliberately survive logout; the
// next user of the app keeps the device configuration, not the identity.
func (s *Store) ClearSession(ctx context.Context) error {
	err := s.removeAll(ctx, KeyAuthToken, KeySessionID, KeySessionExpiry, KeyUserData)
	s.metricInc(MetricSessionCleared)
	s.report(ctx, "clear_session", "", err)
	return err
}

// ClearAll wipes both physical stores entirely, cache entries and
// preferences included. For account deletion and hard resets only.
func (s *Store) ClearAll(ctx context.Context) error {
	var errs []error
	if err := s.bound.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.alternate != nil {
		if err := s.alternate.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	s.metricInc(MetricStoreWiped)
	s.report(ctx, "clear_all", "", err)
	return err
}

// removeAll deletes every key, continuing past failures so one unreachable
// key cannot leave the later ones behind.
func (s *Store) removeAll(ctx context.Context, keys ...StorageKey) error {
	var errs []error
	for _, key := range keys {
		if err := s.deleteRaw(ctx, key.raw()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
