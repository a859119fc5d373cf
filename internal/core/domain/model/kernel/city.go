package kernel

import (
	"errors"
	"strings"

	"freight/internal/pkg/errs"
)

var ErrCityIsNotConstructed = errors.New("City must be created via NewCity constructor")

// City names a destination, a station or the location of a store.
// Names are compared case-insensitively with surrounding and repeated
// whitespace ignored, so "Kandy" and " kandy " are the same city.
type City struct {
	name string
	key  string
}

func NewCity(name string) (City, error) {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return City{}, errs.NewValueIsRequiredError("city")
	}
	return City{name: trimmed, key: strings.ToLower(trimmed)}, nil
}

// MustCity is NewCity for literals known to be valid.
func MustCity(name string) City {
	c, err := NewCity(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (c City) Validate() error {
	if c.key == "" {
		return ErrCityIsNotConstructed
	}
	return nil
}

func (c City) String() string {
	return c.name
}

func (c City) IsEqual(other City) bool {
	return c.key != "" && c.key == other.key
}

// Key is the normalized form used for comparison and lookups.
func (c City) Key() string {
	return c.key
}
