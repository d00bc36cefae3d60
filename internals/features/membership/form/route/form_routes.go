package route

import (
	"github.com/gofiber/fiber/v2"

	"robotdan_backend/internals/configs"
	"robotdan_backend/internals/features/membership/form/controller"
	"robotdan_backend/internals/features/membership/form/service"
	"robotdan_backend/internals/middlewares"
	sessionMw "robotdan_backend/internals/middlewares/session"
)

// FormRoutes — 입회신청서 엔드포인트 등록
// 세션 생성과 소속 목록만 공개, 나머지는 세션 토큰 필수.
func FormRoutes(app *fiber.App, store *service.SessionStore, composer controller.Composer) {
	formCtrl := controller.NewFormController(store)
	gateCtrl := controller.NewGateController(store)
	submitCtrl := controller.NewSubmitController(store, composer)

	api := app.Group("/api")
	api.Get("/affiliations", formCtrl.Affiliations)
	api.Post("/forms", formCtrl.Create)

	forms := api.Group("/forms", sessionMw.RequireSession(configs.JWTSecret))
	forms.Get("/state", formCtrl.State)
	forms.Patch("/fields", formCtrl.UpdateField)
	forms.Patch("/fields/english-name", formCtrl.UpdateEnglishName)
	forms.Put("/photo", formCtrl.UploadPhoto)

	forms.Post("/gate/benefits", gateCtrl.SetBenefits)
	forms.Post("/gate/benefits/close", gateCtrl.CloseBenefitsInfo)
	forms.Post("/gate/pledge", gateCtrl.SetPledge)
	forms.Post("/gate/pledge/confirm", gateCtrl.ConfirmPledge)
	forms.Post("/gate/pledge/dismiss", gateCtrl.DismissPledge)

	forms.Post("/submit", middlewares.SubmitRateLimiter(), submitCtrl.Submit)
}
