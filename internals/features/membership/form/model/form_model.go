package model

import (
	"image"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"robotdan_backend/internals/constants"
)

// ApplicationRecord — 입회신청서 입력값 전체. 모든 필드는 빈 문자열로 시작하고
// ApplyFieldEdit / ApplyEnglishNameEdit 를 통해서만 바뀐다.
type ApplicationRecord struct {
	Affiliation      string `json:"affiliation"`
	Name             string `json:"name"`
	EnglishName      string `json:"englishName"`
	MembershipType   string `json:"membershipType"`
	Gender           string `json:"gender"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	GuardianRelation string `json:"guardianRelation"`
	GuardianName     string `json:"guardianName"`
	GuardianPhone    string `json:"guardianPhone"`
	Address          string `json:"address"`
	Signature        string `json:"signature"`
	BirthDate        string `json:"birthDate"`
	School           string `json:"school"`
}

// Get — 필드 키로 값 조회. 알 수 없는 키면 ok=false.
func (r ApplicationRecord) Get(field string) (string, bool) {
	switch field {
	case constants.FieldAffiliation:
		return r.Affiliation, true
	case constants.FieldName:
		return r.Name, true
	case constants.FieldEnglishName:
		return r.EnglishName, true
	case constants.FieldMembershipType:
		return r.MembershipType, true
	case constants.FieldGender:
		return r.Gender, true
	case constants.FieldEmail:
		return r.Email, true
	case constants.FieldPhone:
		return r.Phone, true
	case constants.FieldGuardianRelation:
		return r.GuardianRelation, true
	case constants.FieldGuardianName:
		return r.GuardianName, true
	case constants.FieldGuardianPhone:
		return r.GuardianPhone, true
	case constants.FieldAddress:
		return r.Address, true
	case constants.FieldSignature:
		return r.Signature, true
	case constants.FieldBirthDate:
		return r.BirthDate, true
	case constants.FieldSchool:
		return r.School, true
	}
	return "", false
}

// WithField — 불변 업데이트: 값을 바꾼 사본을 돌려준다. 알 수 없는 키면 ok=false.
func (r ApplicationRecord) WithField(field, value string) (ApplicationRecord, bool) {
	switch field {
	case constants.FieldAffiliation:
		r.Affiliation = value
	case constants.FieldName:
		r.Name = value
	case constants.FieldEnglishName:
		r.EnglishName = value
	case constants.FieldMembershipType:
		r.MembershipType = value
	case constants.FieldGender:
		r.Gender = value
	case constants.FieldEmail:
		r.Email = value
	case constants.FieldPhone:
		r.Phone = value
	case constants.FieldGuardianRelation:
		r.GuardianRelation = value
	case constants.FieldGuardianName:
		r.GuardianName = value
	case constants.FieldGuardianPhone:
		r.GuardianPhone = value
	case constants.FieldAddress:
		r.Address = value
	case constants.FieldSignature:
		r.Signature = value
	case constants.FieldBirthDate:
		r.BirthDate = value
	case constants.FieldSchool:
		r.School = value
	default:
		return r, false
	}
	return r, true
}

// ErrorSet — 필드 키 → 안내 문구. 검증 때마다 전체 재계산되고,
// 필드 수정 시 해당 키만 낙관적으로 지워진다.
type ErrorSet map[string]string

func (e ErrorSet) Clone() ErrorSet {
	out := make(ErrorSet, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Attachment — 업로드된 증명사진. 재업로드 시 통째로 교체.
type Attachment struct {
	Image  image.Image
	Format string // jpeg | png | webp
	Size   int    // 원본 바이트 수
}

// 영문 이름 허용 문자: 영문 대소문자, 공백류, 하이픈 (문자열 전체 검사)
var englishNamePattern = regexp.MustCompile(`^[A-Za-z\s-]*$`)

// EnglishNameNotice — 영문 이름 입력 거부 시 보여줄 안내 (차단성 오류 아님)
const EnglishNameNotice = "영문 이름은 영문자, 공백, 하이픈만 입력할 수 있습니다."

/* =========================================================
   FormSession — 신청 세션 하나 = 신청서 하나
   모든 변경은 세션 잠금 아래의 Apply* 메서드로만 수행한다.
   ========================================================= */

type FormSession struct {
	mu sync.Mutex

	ID        uuid.UUID
	CreatedAt time.Time
	TouchedAt time.Time

	Record ApplicationRecord
	Photo  *Attachment
	Errors ErrorSet
	Notice string // 영문 이름 거부 안내 (ErrorSet 과 별도 채널)
	Gate   SubmissionGate

	composing bool // 문서 합성 재진입 차단 플래그
}

func NewFormSession() *FormSession {
	now := time.Now()
	return &FormSession{
		ID:        uuid.New(),
		CreatedAt: now,
		TouchedAt: now,
		Errors:    ErrorSet{},
		Gate:      NewSubmissionGate(),
	}
}

func (s *FormSession) Lock()   { s.mu.Lock() }
func (s *FormSession) Unlock() { s.mu.Unlock() }

func (s *FormSession) Touch() { s.TouchedAt = time.Now() }

// ApplyFieldEdit — 값을 그대로 저장하고, 해당 필드의 오류만 지운다.
// 새 값의 유효성과 무관하게 오류는 지워진다(낙관적 클리어).
// 영문 이름은 전용 메서드를 거쳐야 하므로 여기서는 거부한다.
func (s *FormSession) ApplyFieldEdit(field, value string) bool {
	if field == constants.FieldEnglishName {
		accepted := s.ApplyEnglishNameEdit(value)
		_ = accepted // 제약 위반이어도 호출 자체는 성공으로 본다
		return true
	}
	next, ok := s.Record.WithField(field, value)
	if !ok {
		return false
	}
	s.Record = next
	delete(s.Errors, field)
	s.Touch()
	return true
}

// ApplyEnglishNameEdit — 허용 문자 집합에 맞을 때만 저장.
// 거부 시 저장값은 그대로 두고 안내 문구만 세팅한다.
func (s *FormSession) ApplyEnglishNameEdit(value string) bool {
	if !englishNamePattern.MatchString(value) {
		s.Notice = EnglishNameNotice
		return false
	}
	s.Record.EnglishName = value
	s.Notice = ""
	delete(s.Errors, constants.FieldEnglishName)
	s.Touch()
	return true
}

// SetPhoto — 첨부 사진 통째 교체 + 사진 누락 오류 해제.
// 업로드 경쟁은 마지막 완료가 이긴다(취소 프리미티브 없음).
func (s *FormSession) SetPhoto(att *Attachment) {
	s.Photo = att
	delete(s.Errors, constants.FieldPhoto)
	s.Touch()
}

func (s *FormSession) HasPhoto() bool {
	return s.Photo != nil
}

func (s *FormSession) SetErrors(errs ErrorSet) {
	s.Errors = errs
}

// BeginCompose — 합성 재진입 차단. 이미 진행 중이면 false.
func (s *FormSession) BeginCompose() bool {
	if s.composing {
		return false
	}
	s.composing = true
	return true
}

func (s *FormSession) EndCompose() {
	s.composing = false
}

func (s *FormSession) Composing() bool {
	return s.composing
}
