package controller

import (
	"context"
	"image"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"robotdan_backend/internals/features/membership/form/model"
	"robotdan_backend/internals/features/membership/form/service"
	helper "robotdan_backend/internals/helpers"
)

// Composer — 문서 합성 파이프라인 (document feature 가 구현)
type Composer interface {
	Compose(ctx context.Context, rec model.ApplicationRecord, photo image.Image) ([]byte, string, error)
}

type SubmitController struct {
	Store    *service.SessionStore
	Composer Composer
}

func NewSubmitController(store *service.SessionStore, composer Composer) *SubmitController {
	return &SubmitController{Store: store, Composer: composer}
}

// gateError — 게이트 위반은 필드 오류와 구분되는 명시적 중단으로 내려준다
func gateError(c *fiber.Ctx, errorCode, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"code":       fiber.StatusConflict,
		"status":     "error",
		"error_code": errorCode,
		"message":    message,
	})
}

// Submit — 검증 → 게이트 → 합성. 성공 시 JPEG 다운로드, 세션 폐기.
func (ctrl *SubmitController) Submit(c *fiber.Ctx) error {
	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()

	rec := sess.Record
	errs, ok := service.Validate(rec, sess.HasPhoto())
	sess.SetErrors(errs)
	if !ok {
		focus := service.FirstInvalid(errs)
		sess.Unlock()
		// 첫 번째 오류 필드로 포커스 이동은 클라이언트 몫 — focus 로 알려준다
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "필수 항목을 모두 입력해주세요", fiber.Map{
			"fields": errs,
			"focus":  focus,
		})
	}

	if !sess.Gate.CanSubmit() {
		sess.Unlock()
		return gateError(c, "PLEDGE_REQUIRED", "회원 서약에 동의해야 제출할 수 있습니다.")
	}

	// 합성 중 재제출 차단
	if !sess.BeginCompose() {
		sess.Unlock()
		return gateError(c, "COMPOSING", "문서를 생성하는 중입니다. 잠시만 기다려주세요.")
	}

	var photo image.Image
	if sess.Photo != nil {
		photo = sess.Photo.Image
	}
	sess.Unlock()

	artifact, filename, err := ctrl.Composer.Compose(c.UserContext(), rec, photo)

	sess.Lock()
	sess.EndCompose()
	sess.Unlock()

	if err != nil {
		log.Printf("❌ 문서 합성 실패: session=%s err=%v", sess.ID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "신청서 이미지 생성에 실패했습니다. 다시 시도해주세요.")
	}

	// 아티팩트가 만들어졌으면 세션(레코드·사진)은 버린다 — 어디에도 저장하지 않는다
	ctrl.Store.Delete(sess.ID)
	log.Printf("✅ 입회신청서 생성 완료: session=%s file=%s size=%dB", sess.ID, filename, len(artifact))

	encoded := url.PathEscape(filename)
	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set("X-Artifact-Filename", encoded)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+encoded)
	return c.Send(artifact)
}
