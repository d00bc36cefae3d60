package controller

import (
	"github.com/gofiber/fiber/v2"

	"robotdan_backend/internals/features/membership/form/dto"
	"robotdan_backend/internals/features/membership/form/service"
	helper "robotdan_backend/internals/helpers"
)

type GateController struct {
	Store *service.SessionStore
}

func NewGateController(store *service.SessionStore) *GateController {
	return &GateController{Store: store}
}

// SetBenefits — 혜택 안내 체크/해제. 체크하면 안내창이 같이 열린다.
func (ctrl *GateController) SetBenefits(c *fiber.Ctx) error {
	var req dto.GateCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "요청 본문이 올바르지 않습니다")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Gate.SetBenefits(*req.Checked)
	sess.Touch()
	return helper.Success(c, "혜택 안내 확인 상태가 변경되었습니다", dto.NewGateStateResponse(sess.Gate))
}

// CloseBenefitsInfo — 안내창 닫기. 확인값 자체는 바뀌지 않는다.
func (ctrl *GateController) CloseBenefitsInfo(c *fiber.Ctx) error {
	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Gate.CloseBenefitsInfo()
	return helper.Success(c, "혜택 안내창을 닫았습니다", dto.NewGateStateResponse(sess.Gate))
}

// SetPledge — 서약 체크: 확인 대기 + 확인창 열림. 해제: 즉시 미수락.
func (ctrl *GateController) SetPledge(c *fiber.Ctx) error {
	var req dto.GateCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "요청 본문이 올바르지 않습니다")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Gate.SetPledge(*req.Checked)
	sess.Touch()
	return helper.Success(c, "서약 체크 상태가 변경되었습니다", dto.NewGateStateResponse(sess.Gate))
}

// ConfirmPledge — 확인창의 동의. pledge 가 수락되는 유일한 경로.
func (ctrl *GateController) ConfirmPledge(c *fiber.Ctx) error {
	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Gate.ConfirmPledge()
	sess.Touch()
	return helper.Success(c, "서약에 동의했습니다", dto.NewGateStateResponse(sess.Gate))
}

// DismissPledge — 동의 없이 확인창을 닫으면 체크가 풀린 것으로 본다.
func (ctrl *GateController) DismissPledge(c *fiber.Ctx) error {
	sess, err := currentSession(c, ctrl.Store)
	if err != nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Gate.DismissPledge()
	sess.Touch()
	return helper.Success(c, "서약 확인창을 닫았습니다", dto.NewGateStateResponse(sess.Gate))
}
