package clientstore

import "context"

// Theme returns the selected UI theme; ok is false when none was stored.
func (s *Store) Theme(ctx context.Context) (string, bool) {
	return s.GetString(ctx, KeyTheme)
}

// SetTheme stores the selected UI theme. Deliberately outside the session
// lifecycle: the theme survives logout.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.SetString(ctx, KeyTheme, theme)
}

// BiometricEnabled reports the biometric unlock preference.
func (s *Store) BiometricEnabled(ctx context.Context) bool {
	return s.GetBool(ctx, KeyBiometricEnabled)
}

// SetBiometricEnabled records the biometric unlock preference.
func (s *Store) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return s.SetBool(ctx, KeyBiometricEnabled, enabled)
}

// PushToken returns the push notification registration token.
func (s *Store) PushToken(ctx context.Context) (string, bool) {
	return s.GetString(ctx, KeyPushToken)
}

// SetPushToken stores the push notification registration token.
func (s *Store) SetPushToken(ctx context.Context, token string) error {
	return s.SetString(ctx, KeyPushToken, token)
}
