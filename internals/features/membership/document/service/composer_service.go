package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"robotdan_backend/internals/constants"
	"robotdan_backend/internals/features/membership/form/model"
	formservice "robotdan_backend/internals/features/membership/form/service"
)

/* =========================================================
   DocumentComposer — 완성된 신청서의 인쇄용 아티팩트 생성
   캡처 → A4 비율 고정 캔버스(1240×1754) 흰 배경 → 상단 중앙 제목 →
   비율 유지 scale-to-fit 중앙 배치 → 최고 품질 JPEG
   ========================================================= */

const (
	PageWidth  = 1240
	PageHeight = 1754

	pageMargin    = 60
	titleBaseline = 110
	contentTop    = 170 // 제목 영역 아래부터 본문 배치
	titleFontSize = 40
)

// Capturer — 신청서 영역 캡처 담당 (지연 작업, ctx 로 중단 가능)
type Capturer interface {
	Capture(ctx context.Context, rec model.ApplicationRecord, photo image.Image, grade string) (image.Image, error)
}

type DocumentComposer struct {
	capturer  Capturer
	titleFace font.Face
}

func NewDocumentComposer(capturer Capturer, fonts *FontSet) (*DocumentComposer, error) {
	titleFace, err := NewFace(fonts.Bold, titleFontSize)
	if err != nil {
		return nil, fmt.Errorf("제목 face 생성 실패: %w", err)
	}
	return &DocumentComposer{capturer: capturer, titleFace: titleFace}, nil
}

// Compose — 캡처 실패는 이번 시도 전체의 실패로 본다 (자동 재시도 없음).
// 반환: JPEG 바이트, 다운로드 파일명.
func (dc *DocumentComposer) Compose(ctx context.Context, rec model.ApplicationRecord, photo image.Image) ([]byte, string, error) {
	// 학년은 항상 제출 시점에 다시 계산한다
	grade := formservice.CurrentGrade(rec.BirthDate)

	capture, err := dc.capturer.Capture(ctx, rec, photo, grade)
	if err != nil {
		return nil, "", fmt.Errorf("신청서 캡처 실패: %w", err)
	}

	page := imaging.New(PageWidth, PageHeight, color.White)

	// 제목 — 가로 중앙
	d := &font.Drawer{
		Dst:  page,
		Src:  image.NewUniform(color.Black),
		Face: dc.titleFace,
	}
	titleWidth := d.MeasureString(constants.FormTitle)
	d.Dot = fixed.Point26_6{
		X: fixed.I(PageWidth)/2 - titleWidth/2,
		Y: fixed.I(titleBaseline),
	}
	d.DrawString(constants.FormTitle)

	// 캡처를 여백 안에 비율 유지로 맞추고 중앙 배치
	_, x, y, w, h := FitRect(capture.Bounds().Dx(), capture.Bounds().Dy())
	scaled := imaging.Resize(capture, w, h, imaging.Lanczos)
	result := imaging.Paste(page, scaled, image.Pt(x, y))

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, result, imaging.JPEG, imaging.JPEGQuality(100)); err != nil {
		return nil, "", fmt.Errorf("JPEG 인코딩 실패: %w", err)
	}

	return buf.Bytes(), ArtifactFilename(rec.Name, time.Now()), nil
}

// FitRect — 균일 배율 scale = min(availW/capW, availH/capH).
// 왜곡·잘림 없이 들어가고, 남는 공간은 양쪽에 똑같이 나뉜다.
// 캡처가 가용 영역보다 양쪽 다 작을 때만 scale 이 1 을 넘을 수 있다.
func FitRect(capW, capH int) (scale float64, x, y, w, h int) {
	availW := PageWidth - 2*pageMargin
	availH := PageHeight - contentTop - 2*pageMargin

	scale = math.Min(float64(availW)/float64(capW), float64(availH)/float64(capH))

	w = int(math.Round(float64(capW) * scale))
	h = int(math.Round(float64(capH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > availW {
		w = availW
	}
	if h > availH {
		h = availH
	}

	x = pageMargin + (availW-w)/2
	y = contentTop + pageMargin + (availH-h)/2
	return scale, x, y, w, h
}

// ArtifactFilename — {이름}_{오늘 날짜(ko-KR 표기에서 구분 기호 제거)}_입회신청서.jpeg
func ArtifactFilename(name string, now time.Time) string {
	// ko-KR 로케일 날짜 "2026. 8. 23." → "2026823"
	date := now.Format("2006. 1. 2.")
	var digits strings.Builder
	for _, r := range date {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s_%s_%s.jpeg", name, digits.String(), constants.ArtifactSuffix)
}
