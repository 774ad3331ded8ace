package entities

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/dig"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// SuffixGenerator returns the suffix appended to a site name after a collision.
type SuffixGenerator func() string

// RegisterProviders registers all entity providers with the DIG container.
// Settings are loaded by the entry point and provided there.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() Clock { return time.Now }); err != nil {
		return err
	}
	if err := container.Provide(func() IDGenerator { return uuid.NewString }); err != nil {
		return err
	}
	if err := container.Provide(func() SuffixGenerator {
		return func() string { return RandomSuffix(SuffixLength) }
	}); err != nil {
		return err
	}
	return nil
}
