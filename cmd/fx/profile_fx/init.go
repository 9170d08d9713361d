package profile_fx

import (
	"go.uber.org/fx"

	"portal/internal/repositories"
	"portal/internal/services"
	mem "portal/pkg/memcache"
)

var Module = fx.Provide(
	provideProfileService)

func provideProfileService(accountRepo repositories.AccountRepository, photos repositories.PhotoStore, sessions mem.SessionStore) services.ProfileServiceInterface {
	return services.NewProfileService(accountRepo, photos, sessions)
}
