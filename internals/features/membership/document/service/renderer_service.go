package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"robotdan_backend/internals/constants"
	"robotdan_backend/internals/features/membership/form/model"
)

/* =========================================================
   FormRenderer — 신청서 영역 캡처
   화면 DOM 대신 레코드를 직접 그린다. 캡처는 인쇄 밀도 확보를 위해
   2배 슈퍼샘플링으로 뜨고, 캡처 동안 인터랙션 전용 요소(체크박스·버튼)는
   숨겼다가 어떤 종료 경로에서든 반드시 복원한다.
   ========================================================= */

// 논리 좌표 (배율 곱하기 전)
const (
	CaptureScale = 2

	formWidth = 620
	rowsTop   = 250
	rowHeight = 44
	labelX    = 40
	valueX    = 210

	photoBoxX = 440
	photoBoxY = 50
	photoBoxW = 135
	photoBoxH = 180

	overlayHeight = 130

	headerFontSize = 22
	labelFontSize  = 15
	valueFontSize  = 16
)

type FormRenderer struct {
	mu            sync.Mutex
	overlayHidden bool

	headerFace font.Face
	labelFace  font.Face
	valueFace  font.Face
}

func NewFormRenderer(fonts *FontSet) (*FormRenderer, error) {
	headerFace, err := NewFace(fonts.Bold, headerFontSize*CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("머리글 face 생성 실패: %w", err)
	}
	labelFace, err := NewFace(fonts.Regular, labelFontSize*CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("라벨 face 생성 실패: %w", err)
	}
	valueFace, err := NewFace(fonts.Regular, valueFontSize*CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("본문 face 생성 실패: %w", err)
	}
	return &FormRenderer{
		headerFace: headerFace,
		labelFace:  labelFace,
		valueFace:  valueFace,
	}, nil
}

// acquireOverlayHidden — 숨김 상태를 스코프 자원으로 획득.
// 반환된 restore 는 성공/실패 모든 경로에서 호출되어야 한다.
func (r *FormRenderer) acquireOverlayHidden() (restore func(), err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlayHidden {
		return nil, fmt.Errorf("캡처가 이미 진행 중입니다")
	}
	r.overlayHidden = true
	return func() {
		r.mu.Lock()
		r.overlayHidden = false
		r.mu.Unlock()
	}, nil
}

func (r *FormRenderer) OverlayHidden() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlayHidden
}

// Capture — 인터랙션 요소를 숨긴 채 2배 래스터로 렌더링.
// 렌더링은 별도 고루틴에서 돌고 ctx 취소 시 중단된 것으로 처리한다.
func (r *FormRenderer) Capture(ctx context.Context, rec model.ApplicationRecord, photo image.Image, grade string) (image.Image, error) {
	restore, err := r.acquireOverlayHidden()
	if err != nil {
		return nil, err
	}
	defer restore()

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := r.render(rec, photo, grade)
		ch <- result{img, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.img, res.err
	}
}

// RenderPreview — 미리보기용 (오버레이 포함, 숨김 처리 없음)
func (r *FormRenderer) RenderPreview(rec model.ApplicationRecord, photo image.Image, grade string) (image.Image, error) {
	return r.render(rec, photo, grade)
}

type fieldRow struct {
	label string
	value string
}

func buildRows(rec model.ApplicationRecord, grade string) []fieldRow {
	rows := make([]fieldRow, 0, 15)
	for _, f := range constants.FocusOrder {
		if f == constants.FieldPhoto {
			continue
		}
		v, _ := rec.Get(f)
		rows = append(rows, fieldRow{label: constants.FieldLabels[f], value: v})
	}
	// 학년은 파생값 — 저장하지 않고 렌더 시점 값을 그린다
	rows = append(rows, fieldRow{label: "학년", value: grade})
	return rows
}

func (r *FormRenderer) render(rec model.ApplicationRecord, photo image.Image, grade string) (image.Image, error) {
	hidden := r.OverlayHidden()

	rows := buildRows(rec, grade)
	height := rowsTop + len(rows)*rowHeight + 40
	if !hidden {
		height += overlayHeight
	}

	const s = CaptureScale
	canvas := image.NewRGBA(image.Rect(0, 0, formWidth*s, height*s))
	fillRect(canvas, canvas.Bounds(), color.White)
	strokeRect(canvas, canvas.Bounds(), 2*s, color.RGBA{R: 60, G: 60, B: 60, A: 255})

	r.drawText(canvas, r.headerFace, labelX*s, 80*s, "입회 신청 내용")

	// 증명사진 칸
	box := image.Rect(photoBoxX*s, photoBoxY*s, (photoBoxX+photoBoxW)*s, (photoBoxY+photoBoxH)*s)
	strokeRect(canvas, box, s, color.RGBA{R: 120, G: 120, B: 120, A: 255})
	if photo != nil {
		drawImageFit(canvas, box, photo)
	} else {
		r.drawText(canvas, r.labelFace, (photoBoxX+44)*s, (photoBoxY+95)*s, "사 진")
	}

	y := rowsTop
	for _, row := range rows {
		r.drawText(canvas, r.labelFace, labelX*s, y*s, row.label)
		r.drawText(canvas, r.valueFace, valueX*s, y*s, row.value)
		y += rowHeight
	}

	// 인터랙션 전용 요소 — 캡처에서는 제외되는 영역
	if !hidden {
		r.drawOverlay(canvas, y+20)
	}

	return canvas, nil
}

// drawOverlay — 동의 체크박스 2개와 제출 버튼 (화면 전용)
func (r *FormRenderer) drawOverlay(canvas *image.RGBA, top int) {
	const s = CaptureScale
	line := color.RGBA{R: 90, G: 90, B: 90, A: 255}

	box1 := image.Rect(labelX*s, top*s, (labelX+14)*s, (top+14)*s)
	strokeRect(canvas, box1, s, line)
	r.drawText(canvas, r.labelFace, (labelX+24)*s, (top+13)*s, "회원 혜택 안내를 확인했습니다")

	top += 30
	box2 := image.Rect(labelX*s, top*s, (labelX+14)*s, (top+14)*s)
	strokeRect(canvas, box2, s, line)
	r.drawText(canvas, r.labelFace, (labelX+24)*s, (top+13)*s, "회원 서약에 동의합니다")

	top += 34
	button := image.Rect(labelX*s, top*s, (labelX+140)*s, (top+38)*s)
	strokeRect(canvas, button, 2*s, line)
	r.drawText(canvas, r.labelFace, (labelX+44)*s, (top+25)*s, "제출하기")
}

func (r *FormRenderer) drawText(dst *image.RGBA, face font.Face, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func fillRect(dst *image.RGBA, rect image.Rectangle, c color.Color) {
	xdraw.Draw(dst, rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func strokeRect(dst *image.RGBA, rect image.Rectangle, width int, c color.Color) {
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), c)
	fillRect(dst, image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), c)
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), c)
	fillRect(dst, image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

// drawImageFit — 비율을 유지하며 박스 안에 맞춰 그린다 (CatmullRom)
func drawImageFit(dst *image.RGBA, box image.Rectangle, src image.Image) {
	sb := src.Bounds()
	if sb.Dx() < 1 || sb.Dy() < 1 {
		return
	}
	scale := math.Min(float64(box.Dx())/float64(sb.Dx()), float64(box.Dy())/float64(sb.Dy()))
	w := int(math.Round(float64(sb.Dx()) * scale))
	h := int(math.Round(float64(sb.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, xdraw.Over, nil)
}
