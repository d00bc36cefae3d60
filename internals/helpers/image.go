package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

/* =======================================================================
   증명사진 디코드 (jpeg/png/webp) — []byte 에서 MIME sniff 후 디코드
======================================================================= */

func DecodeImage(all []byte, filename string) (image.Image, string, error) {
	if len(all) == 0 {
		return nil, "", fmt.Errorf("빈 파일입니다")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img    image.Image
		format string
		err    error
	)

	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
		format = "jpeg"
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
		format = "png"
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
		format = "webp"
	default:
		// sniff 실패 시 확장자로 재시도
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
			format = "jpeg"
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
			format = "png"
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
			format = "webp"
		default:
			return nil, "", fmt.Errorf("지원하지 않는 이미지 형식입니다: %s / %s", ct, ext)
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("이미지 디코드 실패: %w", err)
	}
	return img, format, nil
}
