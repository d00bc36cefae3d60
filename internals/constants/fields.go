package constants

// =======================
// 입회신청서 필드 키
// =======================
// 프론트 input name 과 1:1 로 맞춘다. FieldPhoto 는 레코드 필드가 아니라
// 첨부 사진의 존재 여부 검증용 키.
const (
	FieldAffiliation      = "affiliation"      // 소속
	FieldName             = "name"             // 이름 (한글)
	FieldEnglishName      = "englishName"      // 영문 이름
	FieldMembershipType   = "membershipType"   // 회원 구분
	FieldGender           = "gender"           // 성별
	FieldEmail            = "email"            // 이메일
	FieldPhone            = "phone"            // 연락처
	FieldGuardianRelation = "guardianRelation" // 보호자 관계
	FieldGuardianName     = "guardianName"     // 보호자 이름
	FieldGuardianPhone    = "guardianPhone"    // 보호자 연락처
	FieldAddress          = "address"          // 주소
	FieldSignature        = "signature"        // 서명
	FieldBirthDate        = "birthDate"        // 생년월일 (YYYY-MM-DD)
	FieldSchool           = "school"           // 학교
	FieldPhoto            = "photo"            // 증명사진 첨부
)

// FocusOrder — 검증 실패 시 첫 번째 오류 필드로 포커스를 옮길 때 쓰는
// 고정 순서. 순서가 바뀌면 포커스 동작이 비결정적이 되므로 건드리지 말 것.
var FocusOrder = []string{
	FieldAffiliation,
	FieldName,
	FieldEnglishName,
	FieldMembershipType,
	FieldGender,
	FieldEmail,
	FieldPhone,
	FieldGuardianRelation,
	FieldGuardianName,
	FieldGuardianPhone,
	FieldAddress,
	FieldSignature,
	FieldBirthDate,
	FieldSchool,
	FieldPhoto,
}

// RequiredMessages — 필수값 누락 시 필드별 고정 안내 문구
var RequiredMessages = map[string]string{
	FieldAffiliation:      "소속을 선택해주세요.",
	FieldName:             "이름을 입력해주세요.",
	FieldEnglishName:      "영문 이름을 입력해주세요.",
	FieldMembershipType:   "회원 구분을 선택해주세요.",
	FieldGender:           "성별을 선택해주세요.",
	FieldEmail:            "이메일을 입력해주세요.",
	FieldPhone:            "연락처를 입력해주세요.",
	FieldGuardianRelation: "보호자 관계를 선택해주세요.",
	FieldGuardianName:     "보호자 이름을 입력해주세요.",
	FieldGuardianPhone:    "보호자 연락처를 입력해주세요.",
	FieldAddress:          "주소를 입력해주세요.",
	FieldSignature:        "서명을 입력해주세요.",
	FieldBirthDate:        "생년월일을 입력해주세요.",
	FieldSchool:           "학교를 입력해주세요.",
	FieldPhoto:            "사진을 첨부해주세요.",
}

// FieldLabels — 문서 렌더링(캡처)용 한글 라벨
var FieldLabels = map[string]string{
	FieldAffiliation:      "소속",
	FieldName:             "이름",
	FieldEnglishName:      "영문 이름",
	FieldMembershipType:   "회원 구분",
	FieldGender:           "성별",
	FieldEmail:            "이메일",
	FieldPhone:            "연락처",
	FieldGuardianRelation: "보호자 관계",
	FieldGuardianName:     "보호자 이름",
	FieldGuardianPhone:    "보호자 연락처",
	FieldAddress:          "주소",
	FieldSignature:        "서명",
	FieldBirthDate:        "생년월일",
	FieldSchool:           "학교",
}

// =======================
// 선택형 필드 값 도메인
// =======================
const (
	// 회원 구분
	MembershipTypeGroup      = "단체"
	MembershipTypeIndividual = "개인"

	// 성별
	GenderMale   = "남"
	GenderFemale = "여"

	// 보호자 관계
	GuardianFather = "부"
	GuardianMother = "모"
)

// FormTitle — 완성본 문서 상단 제목 (고정)
const FormTitle = "국제청소년로봇연맹 로봇봉사단 입회신청서"

// ArtifactSuffix — 다운로드 파일명 고정 접미사
const ArtifactSuffix = "입회신청서"
