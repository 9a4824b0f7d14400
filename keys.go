package clientstore

// StorageKey enumerates the closed set of persisted keys. Keys are globally
// unique and are never reused for a different meaning across app versions:
// persisted data must stay readable after an upgrade.
type StorageKey string

const (
	// KeyAuthToken holds the opaque access token issued at login.
	KeyAuthToken StorageKey = "auth_token"
	// KeySessionID holds the opaque server session identifier.
	KeySessionID StorageKey = "session_id"
	// KeySessionExpiry holds the session expiry as epoch milliseconds.
	KeySessionExpiry StorageKey = "session_expiry"
	// KeyRememberMe controls credential restore on next launch. Orthogonal
	// to whether the current session is still valid.
	KeyRememberMe StorageKey = "remember_me"
	// KeyUserData holds the signed-in user's profile as one JSON blob.
	KeyUserData StorageKey = "user_data"
	// KeyTheme holds the selected UI theme.
	KeyTheme StorageKey = "theme"
	// KeyBiometricEnabled holds the biometric unlock preference.
	KeyBiometricEnabled StorageKey = "biometric_enabled"
	// KeyPushToken holds the push notification registration token.
	KeyPushToken StorageKey = "push_token"
	// KeyOfflineQueue holds the FIFO list of pending offline mutations.
	KeyOfflineQueue StorageKey = "offline_queue"
)

func (k StorageKey) raw() string {
	return string(k)
}

// CacheKey names an entry in the TTL cache. It is a distinct type from
// StorageKey and its physical keys carry a dedicated prefix, so a cache key
// can never collide with a session or profile key.
type CacheKey string

const cacheKeyPrefix = "cache:"

func (k CacheKey) raw() string {
	return cacheKeyPrefix + string(k)
}
