package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/folio/internal/domain/entities"
	domainRepos "github.com/rios0rios0/folio/internal/domain/repositories"
)

// PlatformRegistry holds every hosting platform a site can be deployed to.
type PlatformRegistry struct {
	platforms map[entities.Platform]domainRepos.PlatformRepository
}

// NewPlatformRegistry creates an empty platform registry.
func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{
		platforms: make(map[entities.Platform]domainRepos.PlatformRepository),
	}
}

// Register adds a platform under its name.
func (r *PlatformRegistry) Register(p domainRepos.PlatformRepository) {
	r.platforms[p.Name()] = p
}

// Get returns the platform with the given name.
func (r *PlatformRegistry) Get(name entities.Platform) (domainRepos.PlatformRepository, error) {
	platform, ok := r.platforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownPlatform, name)
	}
	return platform, nil
}

// Names returns the registered platform names in lexical order.
func (r *PlatformRegistry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
