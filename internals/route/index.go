package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"robotdan_backend/internals/features/membership/form/controller"
	formRoute "robotdan_backend/internals/features/membership/form/route"
	formService "robotdan_backend/internals/features/membership/form/service"
)

func SetupRoutes(app *fiber.App, store *formService.SessionStore, composer controller.Composer) {
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	log.Println("[INFO] Setting up FormRoutes...")
	formRoute.FormRoutes(app, store, composer)
}
