package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotdan_backend/internals/constants"
	"robotdan_backend/internals/features/membership/form/model"
)

// ==========================
// Test Helper Functions
// ==========================

func fullRecord() model.ApplicationRecord {
	return model.ApplicationRecord{
		Affiliation:      "서울지부",
		Name:             "홍길동",
		EnglishName:      "Hong Gil-dong",
		MembershipType:   constants.MembershipTypeIndividual,
		Gender:           constants.GenderMale,
		Email:            "hong@example.com",
		Phone:            "010-1234-5678",
		GuardianRelation: constants.GuardianFather,
		GuardianName:     "홍판서",
		GuardianPhone:    "010-8765-4321",
		Address:          "서울특별시 종로구 1",
		Signature:        "홍길동",
		BirthDate:        "2012-05-10",
		School:           "한양초등학교",
	}
}

func TestValidate_AllPresent(t *testing.T) {
	errs, ok := Validate(fullRecord(), true)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_EmptyRecord(t *testing.T) {
	errs, ok := Validate(model.ApplicationRecord{}, false)
	assert.False(t, ok)
	// 14개 필드 + 사진 = 15개 필수값 전부 오류
	assert.Len(t, errs, 15)
	for field, msg := range errs {
		assert.Equal(t, constants.RequiredMessages[field], msg)
	}
}

func TestValidate_SingleMissingField(t *testing.T) {
	for _, field := range constants.FocusOrder {
		if field == constants.FieldPhoto {
			continue
		}
		t.Run(field, func(t *testing.T) {
			rec := fullRecord()
			rec, okSet := rec.WithField(field, "")
			require.True(t, okSet)

			errs, ok := Validate(rec, true)
			assert.False(t, ok)
			require.Len(t, errs, 1)
			assert.Equal(t, constants.RequiredMessages[field], errs[field])
		})
	}
}

func TestValidate_MissingPhotoOnly(t *testing.T) {
	errs, ok := Validate(fullRecord(), false)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, constants.RequiredMessages[constants.FieldPhoto], errs[constants.FieldPhoto])
}

func TestFirstInvalid_CanonicalOrder(t *testing.T) {
	// 여러 오류가 있어도 고정 순서상 가장 앞선 필드를 돌려준다
	errs := model.ErrorSet{
		constants.FieldBirthDate: "x",
		constants.FieldGender:    "x",
		constants.FieldPhoto:     "x",
	}
	assert.Equal(t, constants.FieldGender, FirstInvalid(errs))

	delete(errs, constants.FieldGender)
	assert.Equal(t, constants.FieldBirthDate, FirstInvalid(errs))

	delete(errs, constants.FieldBirthDate)
	assert.Equal(t, constants.FieldPhoto, FirstInvalid(errs))

	// 오류 없음 → 빈 문자열 (no-op)
	assert.Empty(t, FirstInvalid(model.ErrorSet{}))
}
