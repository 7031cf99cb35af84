// Package credstore keeps the console's only durable client state: the
// auth token, stored under AuthTokenKey.
package credstore

// AuthTokenKey is the storage key of the bearer token
const AuthTokenKey = "authToken"

// Store is a small string key/value store
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	// Set stores value under key
	Set(key, value string) error
	// Remove deletes key; removing a missing key is not an error
	Remove(key string) error
}

// Token returns the stored auth token, or "" when none is stored or the store fails.
func Token(s Store) string {
	if s == nil {
		return ""
	}
	token, ok, err := s.Get(AuthTokenKey)
	if err != nil || !ok {
		return ""
	}
	return token
}
