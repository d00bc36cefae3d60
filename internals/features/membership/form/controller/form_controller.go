package controller

import (
	"bytes"
	"io"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"robotdan_backend/internals/configs"
	"robotdan_backend/internals/constants"
	"robotdan_backend/internals/features/membership/form/dto"
	"robotdan_backend/internals/features/membership/form/model"
	"robotdan_backend/internals/features/membership/form/service"
	helper "robotdan_backend/internals/helpers"
	sessionMw "robotdan_backend/internals/middlewares/session"
)

var validate = validator.New()

type FormController struct {
	Store *service.SessionStore
}

func NewFormController(store *service.SessionStore) *FormController {
	return &FormController{Store: store}
}

// currentSession — 미들웨어가 Locals 에 적재한 세션 ID 로 세션 조회
func currentSession(c *fiber.Ctx, store *service.SessionStore) (*model.FormSession, error) {
	sid, ok := c.Locals(sessionMw.LocSessionID).(uuid.UUID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "세션 정보가 없습니다")
	}
	sess, ok := store.Get(sid)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "세션이 만료되었거나 존재하지 않습니다")
	}
	return sess, nil
}

// Create — 신청 세션 생성 + 세션 토큰 발급
func (ctrl *FormController) Create(c *fiber.Ctx) error {
	sess := ctrl.Store.Create()

	token, err := sessionMw.IssueSessionToken(configs.JWTSecret, sess.ID, configs.SessionTTL)
	if err != nil {
		ctrl.Store.Delete(sess.ID)
		return helper.Error(c, fiber.StatusInternalServerError, "세션 토큰 발급에 실패했습니다")
	}

	log.Printf("✅ 신청 세션 생성: %s", sess.ID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "신청 세션이 생성되었습니다", dto.CreateFormResponse{
		SessionID: sess.ID.String(),
		Token:     token,
	})
}

// State — 현재 신청서 상태 (학년은 매 조회마다 다시 계산한다)
func (ctrl *FormController) State(c *fiber.Ctx) error {
	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()

	resp := dto.FormStateResponse{
		Record:   sess.Record,
		Grade:    service.CurrentGrade(sess.Record.BirthDate),
		Errors:   sess.Errors.Clone(),
		Notice:   sess.Notice,
		HasPhoto: sess.HasPhoto(),
		Gate:     dto.NewGateStateResponse(sess.Gate),
	}
	return helper.Success(c, "현재 신청서 상태", resp)
}

// Affiliations — 소속 선택지 목록 (고정 순서)
func (ctrl *FormController) Affiliations(c *fiber.Ctx) error {
	return helper.Success(c, "소속 목록", constants.Affiliations)
}

// UpdateField — 필드 값 수정. 값은 그대로 저장되고 해당 필드 오류만 지워진다.
func (ctrl *FormController) UpdateField(c *fiber.Ctx) error {
	var req dto.UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "요청 본문이 올바르지 않습니다")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	// 생년월일 도메인 제약은 DTO 경계에서 거른다 (존재 검증과 별개)
	if req.Field == constants.FieldBirthDate && req.Value != "" {
		birth, err := time.Parse(service.BirthDateLayout, req.Value)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "생년월일 형식이 올바르지 않습니다 (YYYY-MM-DD)")
		}
		if birth.After(time.Now()) {
			return helper.Error(c, fiber.StatusBadRequest, "생년월일은 오늘 이후일 수 없습니다")
		}
	}

	sess.Lock()
	defer sess.Unlock()

	// 영문 이름은 문자 제약이 있는 필드라 전용 흐름으로 처리
	if req.Field == constants.FieldEnglishName {
		accepted := sess.ApplyEnglishNameEdit(req.Value)
		return helper.Success(c, "영문 이름 입력 처리", dto.EnglishNameEditResponse{
			Accepted: accepted,
			Value:    sess.Record.EnglishName,
			Notice:   sess.Notice,
		})
	}

	if !sess.ApplyFieldEdit(req.Field, req.Value) {
		return helper.Error(c, fiber.StatusBadRequest, "알 수 없는 필드입니다: "+req.Field)
	}
	return helper.Success(c, "필드가 수정되었습니다", fiber.Map{
		"field": req.Field,
		"value": req.Value,
	})
}

// UpdateEnglishName — 허용 문자 위반은 차단성 오류가 아니므로 200 + 안내만 내려준다
func (ctrl *FormController) UpdateEnglishName(c *fiber.Ctx) error {
	var req dto.UpdateEnglishNameRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "요청 본문이 올바르지 않습니다")
	}

	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()

	accepted := sess.ApplyEnglishNameEdit(req.Value)
	return helper.Success(c, "영문 이름 입력 처리", dto.EnglishNameEditResponse{
		Accepted: accepted,
		Value:    sess.Record.EnglishName,
		Notice:   sess.Notice,
	})
}

// UploadPhoto — 증명사진 업로드 (통째 교체, 마지막 완료가 이긴다)
func (ctrl *FormController) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "사진 파일이 없습니다")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "사진 파일을 열지 못했습니다")
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "사진 파일을 읽지 못했습니다")
	}

	img, format, err := helper.DecodeImage(buf.Bytes(), fileHeader.Filename)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	sess.SetPhoto(&model.Attachment{Image: img, Format: format, Size: buf.Len()})
	sess.Unlock()

	log.Printf("📷 사진 첨부 완료: session=%s format=%s size=%dB", sess.ID, format, buf.Len())
	return helper.Success(c, "사진이 첨부되었습니다", fiber.Map{
		"format": format,
		"size":   buf.Len(),
	})
}
