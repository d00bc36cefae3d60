package service

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"robotdan_backend/internals/configs"
)

// FontSet — 문서 렌더링용 서체. FONT_PATH / FONT_BOLD_PATH 의 TTF 를 쓰고,
// 없으면 내장 Go 폰트로 대체한다 (한글 글리프가 없으므로 운영에서는 설정 필수).
type FontSet struct {
	Regular *sfnt.Font
	Bold    *sfnt.Font
}

func LoadFonts() (*FontSet, error) {
	regular, err := loadFont(configs.FontPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("본문 폰트 로드 실패: %w", err)
	}
	bold, err := loadFont(configs.FontBoldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("제목 폰트 로드 실패: %w", err)
	}
	return &FontSet{Regular: regular, Bold: bold}, nil
}

func loadFont(path string, fallback []byte) (*sfnt.Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("⚠️ 폰트 파일을 읽지 못해 내장 폰트로 대체합니다 (%s): %v", path, err)
		} else if f, err := opentype.Parse(data); err != nil {
			log.Printf("⚠️ 폰트 파싱 실패, 내장 폰트로 대체합니다 (%s): %v", path, err)
		} else {
			return f, nil
		}
	}
	return opentype.Parse(fallback)
}

// NewFace — 고정 크기 face 생성 (72 DPI 기준 px 단위)
func NewFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
