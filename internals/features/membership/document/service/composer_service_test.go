package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotdan_backend/internals/features/membership/form/model"
)

// ==========================
// Test Helper Functions
// ==========================

func testFonts(t *testing.T) *FontSet {
	t.Helper()
	fonts, err := LoadFonts()
	require.NoError(t, err)
	return fonts
}

func testRecord() model.ApplicationRecord {
	return model.ApplicationRecord{
		Affiliation:      "서울지부",
		Name:             "홍길동",
		EnglishName:      "Hong Gil-dong",
		MembershipType:   "개인",
		Gender:           "남",
		Email:            "hong@example.com",
		Phone:            "010-1234-5678",
		GuardianRelation: "부",
		GuardianName:     "홍판서",
		GuardianPhone:    "010-8765-4321",
		Address:          "서울특별시 종로구 1",
		Signature:        "홍길동",
		BirthDate:        "2012-05-10",
		School:           "한양초등학교",
	}
}

type failingCapturer struct{}

func (failingCapturer) Capture(ctx context.Context, rec model.ApplicationRecord, photo image.Image, grade string) (image.Image, error) {
	return nil, errors.New("boom")
}

// ==========================
// FitRect
// ==========================

func TestFitRect_Geometry(t *testing.T) {
	availW := PageWidth - 2*pageMargin
	availH := PageHeight - contentTop - 2*pageMargin

	sizes := []struct{ w, h int }{
		{1240, 1600}, // 캡처가 페이지보다 큼
		{2000, 500},  // 가로로 긴 캡처
		{500, 2000},  // 세로로 긴 캡처
		{100, 100},   // 양쪽 다 작음 → 확대 허용
		{availW, availH},
	}

	for _, size := range sizes {
		scale, x, y, w, h := FitRect(size.w, size.h)

		// 배율은 min(availW/w, availH/h)
		wantW := float64(availW) / float64(size.w)
		wantH := float64(availH) / float64(size.h)
		want := wantW
		if wantH < want {
			want = wantH
		}
		assert.InDelta(t, want, scale, 1e-9)

		// 양쪽 다 작을 때만 1 을 넘는다
		if scale > 1 {
			assert.Less(t, size.w, availW)
			assert.Less(t, size.h, availH)
		}

		// 여백 영역 안에 완전히 포함
		assert.GreaterOrEqual(t, x, pageMargin)
		assert.GreaterOrEqual(t, y, contentTop+pageMargin)
		assert.LessOrEqual(t, x+w, PageWidth-pageMargin)
		assert.LessOrEqual(t, y+h, PageHeight-pageMargin)

		// 중앙 배치: 마주보는 남는 공간이 같다 (정수 반올림 1px 허용)
		leftGap := x - pageMargin
		rightGap := (PageWidth - pageMargin) - (x + w)
		assert.InDelta(t, leftGap, rightGap, 1)

		topGap := y - (contentTop + pageMargin)
		bottomGap := (PageHeight - pageMargin) - (y + h)
		assert.InDelta(t, topGap, bottomGap, 1)
	}
}

// ==========================
// ArtifactFilename
// ==========================

func TestArtifactFilename(t *testing.T) {
	day := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "홍길동_2026823_입회신청서.jpeg", ArtifactFilename("홍길동", day))

	// 한 자리 월/일도 ko-KR 표기 그대로 (0 패딩 없음)
	day = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "김민수_202612_입회신청서.jpeg", ArtifactFilename("김민수", day))
}

// ==========================
// Compose
// ==========================

func TestCompose_ProducesFixedSizeJPEG(t *testing.T) {
	fonts := testFonts(t)
	renderer, err := NewFormRenderer(fonts)
	require.NoError(t, err)
	composer, err := NewDocumentComposer(renderer, fonts)
	require.NoError(t, err)

	photo := image.NewRGBA(image.Rect(0, 0, 300, 400))
	artifact, filename, err := composer.Compose(context.Background(), testRecord(), photo)
	require.NoError(t, err)
	require.NotEmpty(t, artifact)

	img, err := jpeg.Decode(bytes.NewReader(artifact))
	require.NoError(t, err)
	assert.Equal(t, PageWidth, img.Bounds().Dx())
	assert.Equal(t, PageHeight, img.Bounds().Dy())

	assert.Contains(t, filename, "홍길동_")
	assert.Contains(t, filename, "_입회신청서.jpeg")

	// 캡처 동안 숨겼던 인터랙션 요소가 복원되어 있어야 한다
	assert.False(t, renderer.OverlayHidden())
}

func TestCompose_CaptureFailureIsFatal(t *testing.T) {
	fonts := testFonts(t)
	composer, err := NewDocumentComposer(failingCapturer{}, fonts)
	require.NoError(t, err)

	_, _, err = composer.Compose(context.Background(), testRecord(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "캡처 실패")
}

// ==========================
// FormRenderer
// ==========================

func TestCapture_SupersamplesAndHidesOverlay(t *testing.T) {
	fonts := testFonts(t)
	renderer, err := NewFormRenderer(fonts)
	require.NoError(t, err)

	rec := testRecord()
	capture, err := renderer.Capture(context.Background(), rec, nil, "중1")
	require.NoError(t, err)

	// 2배 슈퍼샘플링 폭
	assert.Equal(t, formWidth*CaptureScale, capture.Bounds().Dx())

	// 미리보기(오버레이 포함)는 캡처보다 길다 — 인터랙션 요소가 캡처에서 빠졌다는 뜻
	preview, err := renderer.RenderPreview(rec, nil, "중1")
	require.NoError(t, err)
	assert.Equal(t, capture.Bounds().Dy()+overlayHeight*CaptureScale, preview.Bounds().Dy())

	// 종료 후 복원
	assert.False(t, renderer.OverlayHidden())
}

func TestCapture_RestoresOverlayOnCancel(t *testing.T) {
	fonts := testFonts(t)
	renderer, err := NewFormRenderer(fonts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 취소돼도(결과가 무엇이든) 숨김 상태는 반드시 복원된다
	_, _ = renderer.Capture(ctx, testRecord(), nil, "")
	assert.False(t, renderer.OverlayHidden())
}
