package route

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotdan_backend/internals/configs"
	"robotdan_backend/internals/constants"
	docservice "robotdan_backend/internals/features/membership/document/service"
	formservice "robotdan_backend/internals/features/membership/form/service"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.SessionTTL = time.Hour

	store := formservice.NewSessionStore(configs.SessionTTL)

	fonts, err := docservice.LoadFonts()
	require.NoError(t, err)
	renderer, err := docservice.NewFormRenderer(fonts)
	require.NoError(t, err)
	composer, err := docservice.NewDocumentComposer(renderer, fonts)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	FormRoutes(app, store, composer)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, v), "body: %s", b)
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/forms", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Data struct {
			SessionID string `json:"session_id"`
			Token     string `json:"token"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func patchField(t *testing.T, app *fiber.App, token, field, value string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPatch, "/api/forms/fields", token, fiber.Map{
		"field": field,
		"value": value,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "field=%s", field)
}

func uploadPhoto(t *testing.T, app *fiber.App, token string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 30, 40))
	imgBuf := new(bytes.Buffer)
	require.NoError(t, png.Encode(imgBuf, img))

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("photo", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/forms/photo", body)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func fillRequired(t *testing.T, app *fiber.App, token string) {
	t.Helper()
	values := map[string]string{
		constants.FieldAffiliation:      "서울지부",
		constants.FieldName:             "홍길동",
		constants.FieldEnglishName:      "Hong Gil-dong",
		constants.FieldMembershipType:   constants.MembershipTypeIndividual,
		constants.FieldGender:           constants.GenderMale,
		constants.FieldEmail:            "hong@example.com",
		constants.FieldPhone:            "010-1234-5678",
		constants.FieldGuardianRelation: constants.GuardianFather,
		constants.FieldGuardianName:     "홍판서",
		constants.FieldGuardianPhone:    "010-8765-4321",
		constants.FieldAddress:          "서울특별시 종로구 1",
		constants.FieldSignature:        "홍길동",
		constants.FieldBirthDate:        "2012-05-10",
		constants.FieldSchool:           "한양초등학교",
	}
	for field, value := range values {
		patchField(t, app, token, field, value)
	}
	uploadPhoto(t, app, token)
}

type gateEnvelope struct {
	Data struct {
		BenefitsAcknowledged bool   `json:"benefits_acknowledged"`
		PledgeStatus         string `json:"pledge_status"`
		PledgeAccepted       bool   `json:"pledge_accepted"`
		PledgeConfirmOpen    bool   `json:"pledge_confirm_open"`
	} `json:"data"`
}

// ==========================
// Scenarios
// ==========================

func TestSubmit_EmptyFormReturnsAllErrors(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/forms/submit", token, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors struct {
			Fields map[string]string `json:"fields"`
			Focus  string            `json:"focus"`
		} `json:"errors"`
	}
	decodeBody(t, resp, &body)

	// 14개 필드 + 사진 = 15개 오류, 포커스는 고정 순서의 맨 앞
	assert.Len(t, body.Errors.Fields, 15)
	assert.Equal(t, constants.FieldAffiliation, body.Errors.Focus)
}

func TestSubmit_PledgeUnconfirmedIsBlocked(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)
	fillRequired(t, app, token)

	// 체크만 하고 확인은 안 함 → pending-confirmation
	resp := doJSON(t, app, http.MethodPost, "/api/forms/gate/pledge", token, fiber.Map{"checked": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var gate gateEnvelope
	decodeBody(t, resp, &gate)
	assert.Equal(t, "pending-confirmation", gate.Data.PledgeStatus)
	assert.False(t, gate.Data.PledgeAccepted)

	resp = doJSON(t, app, http.MethodPost, "/api/forms/submit", token, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "PLEDGE_REQUIRED", body.ErrorCode)
}

func TestSubmit_FullFlowProducesArtifactOnce(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)
	fillRequired(t, app, token)

	resp := doJSON(t, app, http.MethodPost, "/api/forms/gate/pledge", token, fiber.Map{"checked": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/forms/gate/pledge/confirm", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var gate gateEnvelope
	decodeBody(t, resp, &gate)
	require.True(t, gate.Data.PledgeAccepted)

	resp = doJSON(t, app, http.MethodPost, "/api/forms/submit", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))

	// 파일명: {이름}_{날짜}_입회신청서.jpeg (URL 인코딩된 헤더)
	disposition := resp.Header.Get(fiber.HeaderContentDisposition)
	assert.Contains(t, disposition, "attachment; filename*=UTF-8''")
	assert.Contains(t, disposition, "%ED%99%8D%EA%B8%B8%EB%8F%99_") // 홍길동_
	assert.Contains(t, disposition, "%EC%9E%85%ED%9A%8C%EC%8B%A0%EC%B2%AD%EC%84%9C.jpeg")

	artifact, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(artifact))
	require.NoError(t, err)
	assert.Equal(t, docservice.PageWidth, img.Bounds().Dx())
	assert.Equal(t, docservice.PageHeight, img.Bounds().Dy())

	// 아티팩트 생성과 함께 세션은 폐기된다
	resp = doJSON(t, app, http.MethodGet, "/api/forms/state", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnglishName_RejectionIsAdvisoryOnly(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)

	type editEnvelope struct {
		Data struct {
			Accepted bool   `json:"accepted"`
			Value    string `json:"value"`
			Notice   string `json:"notice"`
		} `json:"data"`
	}

	// 숫자 포함 → 거부, 저장값 유지, 안내 문구
	resp := doJSON(t, app, http.MethodPatch, "/api/forms/fields/english-name", token, fiber.Map{"value": "Kim9"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body editEnvelope
	decodeBody(t, resp, &body)
	assert.False(t, body.Data.Accepted)
	assert.Empty(t, body.Data.Value)
	assert.NotEmpty(t, body.Data.Notice)

	// 정상 입력 → 저장 + 안내 문구 해제
	resp = doJSON(t, app, http.MethodPatch, "/api/forms/fields/english-name", token, fiber.Map{"value": "Kim Min-su"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = editEnvelope{}
	decodeBody(t, resp, &body)
	assert.True(t, body.Data.Accepted)
	assert.Equal(t, "Kim Min-su", body.Data.Value)
	assert.Empty(t, body.Data.Notice)
}

func TestState_GradeIsDerivedNotStored(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)

	patchField(t, app, token, constants.FieldBirthDate, "2012-05-10")

	resp := doJSON(t, app, http.MethodGet, "/api/forms/state", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Grade  string            `json:"grade"`
			Record map[string]string `json:"record"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Data.Grade)
	// 레코드에는 학년 필드가 없다 (저장 안 함)
	_, has := body.Data.Record["grade"]
	assert.False(t, has)
}

func TestUpdateField_FutureBirthDateRejected(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	resp := doJSON(t, app, http.MethodPatch, "/api/forms/fields", token, fiber.Map{
		"field": constants.FieldBirthDate,
		"value": future,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGate_DismissRevertsPledge(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/forms/gate/pledge", token, fiber.Map{"checked": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/forms/gate/pledge/dismiss", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var gate gateEnvelope
	decodeBody(t, resp, &gate)
	assert.Equal(t, "unaccepted", gate.Data.PledgeStatus)
	assert.False(t, gate.Data.PledgeConfirmOpen)
}

func TestSession_TokenRequired(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/forms/state", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/forms/state", "invalid-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAffiliations_PublicAndOrdered(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/affiliations", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []string `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, constants.Affiliations, body.Data)
}
