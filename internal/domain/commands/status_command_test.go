//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
	infraRepos "github.com/rios0rios0/folio/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/folio/test/infrastructure/repositorydoubles"
)

func TestStatusCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should relay the platform status", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.SpyPlatformRepository{
			Platform: entities.PlatformNetlify,
			Status:   entities.DeployStatus{SiteID: "abc", State: "ready"},
		}
		registry := infraRepos.NewPlatformRegistry()
		registry.Register(platform)
		cmd := commands.NewStatusCommand(registry)

		// when
		status, err := cmd.Execute(context.Background(), entities.PlatformNetlify, "abc", "tok")

		// then
		require.NoError(t, err)
		assert.Equal(t, "ready", status.State)
		assert.Equal(t, "abc", platform.StatusTarget.SiteID)
		assert.Equal(t, []string{"tok"}, platform.Tokens)
	})

	t.Run("should keep not found distinguishable", func(t *testing.T) {
		t.Parallel()

		// given
		platform := &doubles.SpyPlatformRepository{Platform: entities.PlatformVercel, StatusErr: entities.ErrNotFound}
		registry := infraRepos.NewPlatformRegistry()
		registry.Register(platform)
		cmd := commands.NewStatusCommand(registry)

		// when
		_, err := cmd.Execute(context.Background(), entities.PlatformVercel, "missing", "tok")

		// then
		require.ErrorIs(t, err, entities.ErrNotFound)
		require.ErrorIs(t, err, entities.ErrPlatform)
	})

	t.Run("should validate site id and token", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewStatusCommand(infraRepos.NewPlatformRegistry())

		// when
		_, idErr := cmd.Execute(context.Background(), entities.PlatformNetlify, "", "tok")
		_, tokenErr := cmd.Execute(context.Background(), entities.PlatformNetlify, "abc", "")

		// then
		require.ErrorIs(t, idErr, entities.ErrValidation)
		require.ErrorIs(t, tokenErr, entities.ErrMissingToken)
	})
}
