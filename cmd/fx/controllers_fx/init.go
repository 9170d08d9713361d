package controllers_fx

import (
	"go.uber.org/fx"

	"portal/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewAdminController))
