package photo_fx

import (
	"log"

	"go.uber.org/fx"

	"portal/internal/config"
	"portal/internal/repositories"
	"portal/internal/services"
	mem "portal/pkg/memcache"
)

var Module = fx.Provide(
	providePhotoService, providePhotoStore)

func providePhotoStore(cfg *config.Config) repositories.PhotoStore {
	store, err := repositories.NewPhotoStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}
	return store
}

func providePhotoService(accountRepo repositories.AccountRepository, photos repositories.PhotoStore, sessions mem.SessionStore, cfg *config.Config) services.PhotoServiceInterface {
	return services.NewPhotoService(accountRepo, photos, sessions, cfg)
}
