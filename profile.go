package clientstore

import "context"

// User returns the stored profile. ok is false when no profile is stored or
// the stored blob no longer decodes; the raw blob survives a failed decode
// and stays readable through GetString.
func (s *Store) User(ctx context.Context) (UserProfile, bool) {
	var profile UserProfile
	if !s.GetJSON(ctx, KeyUserData, &profile) {
		return UserProfile{}, false
	}
	return profile, true
}

// SetUser stores the profile as a single blob, fully replacing any prior
// profile. There is no merge: partial updates go through the API layer,
// which hands back a complete profile.
func (s *Store) SetUser(ctx context.Context, profile UserProfile) error {
	return s.SetJSON(ctx, KeyUserData, profile)
}

// RemoveUser deletes the stored profile. Removing an absent profile is not
// an error.
func (s *Store) RemoveUser(ctx context.Context) error {
	return s.Remove(ctx, KeyUserData)
}
