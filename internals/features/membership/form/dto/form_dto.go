package dto

import (
	"strings"

	"robotdan_backend/internals/features/membership/form/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type UpdateFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

func (r *UpdateFieldRequest) Normalize() {
	r.Field = strings.TrimSpace(r.Field)
}

type UpdateEnglishNameRequest struct {
	Value string `json:"value"`
}

type GateCheckRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type CreateFormResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type GateStateResponse struct {
	BenefitsAcknowledged bool   `json:"benefits_acknowledged"`
	BenefitsInfoOpen     bool   `json:"benefits_info_open"`
	PledgeStatus         string `json:"pledge_status"`
	PledgeAccepted       bool   `json:"pledge_accepted"`
	PledgeConfirmOpen    bool   `json:"pledge_confirm_open"`
}

func NewGateStateResponse(g model.SubmissionGate) GateStateResponse {
	return GateStateResponse{
		BenefitsAcknowledged: g.Benefits == model.BenefitsAcknowledged,
		BenefitsInfoOpen:     g.BenefitsInfoOpen,
		PledgeStatus:         g.Pledge.String(),
		PledgeAccepted:       g.Pledge == model.PledgeAccepted,
		PledgeConfirmOpen:    g.PledgeConfirmOpen,
	}
}

type FormStateResponse struct {
	Record   model.ApplicationRecord `json:"record"`
	Grade    string                  `json:"grade"` // 저장 안 함, 조회 시마다 재계산
	Errors   map[string]string       `json:"errors"`
	Notice   string                  `json:"notice,omitempty"`
	HasPhoto bool                    `json:"has_photo"`
	Gate     GateStateResponse       `json:"gate"`
}

type EnglishNameEditResponse struct {
	Accepted bool   `json:"accepted"`
	Value    string `json:"value"`
	Notice   string `json:"notice,omitempty"`
}
