package service

import (
	"robotdan_backend/internals/constants"
	"robotdan_backend/internals/features/membership/form/model"
)

/* =========================================================
   제출 전 필수값 검증
   - 14개 필드 + 사진 첨부 = 15개 필수값, 존재 여부만 본다.
   - 이메일/연락처/서명 형식 검사는 하지 않는다 (비어있지만 않으면 통과).
   ========================================================= */

// Validate — 레코드 + 사진 존재 여부 → ErrorSet. ok = 오류 없음.
func Validate(rec model.ApplicationRecord, hasPhoto bool) (model.ErrorSet, bool) {
	errs := model.ErrorSet{}

	for _, field := range constants.FocusOrder {
		if field == constants.FieldPhoto {
			if !hasPhoto {
				errs[field] = constants.RequiredMessages[field]
			}
			continue
		}
		value, _ := rec.Get(field)
		if value == "" {
			errs[field] = constants.RequiredMessages[field]
		}
	}

	return errs, len(errs) == 0
}

// FirstInvalid — 고정 순서상 가장 앞선 오류 필드. 없으면 "".
// 클라이언트가 이 필드로 포커스/스크롤을 옮긴다.
func FirstInvalid(errs model.ErrorSet) string {
	for _, field := range constants.FocusOrder {
		if _, ok := errs[field]; ok {
			return field
		}
	}
	return ""
}
