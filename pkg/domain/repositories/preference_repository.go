package repositories

import "errors"

// ErrPreferenceNotFound is returned when no value is stored under a key
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository persists small key/value UI preferences as JSON.
// Load failures (missing key, malformed payload) surface as errors here;
// callers degrade to their own default instead of propagating them.
type PreferenceRepository interface {
	Save(key string, value any) error
	Load(key string, dest any) error
	Close() error
}
