package memcache_fx

import (
	"go.uber.org/fx"

	mem "portal/pkg/memcache"
)

var Module = fx.Provide(
	provideSessionStore)

func provideSessionStore() mem.SessionStore {
	return mem.NewSessions()
}
