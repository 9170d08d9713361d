package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"portal/internal/config"
	"portal/internal/repositories"
	"portal/internal/services"
	mem "portal/pkg/memcache"
)

var Module = fx.Provide(
	provideIdentityService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideIdentityService(accountRepo repositories.AccountRepository, sessions mem.SessionStore, cfg *config.Config) services.IdentityServiceInterface {
	return services.NewIdentityService(accountRepo, sessions, cfg)
}
