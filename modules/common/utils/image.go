package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF 디코더 등록
	_ "image/jpeg" // JPEG 디코더 등록
	"image/png"
	"log"
	"strings"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

// DecodeImage - 바이트를 이미지로 디코딩 (검증 + 로드를 한 번에 수행)
// 표준 디코더가 실패하면 WebP 디코더로 재시도
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, format, nil
	}

	// WebP 시그니처 확인 후 go-webp로 재시도
	if isWebP(data) {
		webpImg, werr := webp.Decode(bytes.NewReader(data), &decoder.Options{})
		if werr != nil {
			return nil, "", fmt.Errorf("failed to decode webp image: %w", werr)
		}
		return webpImg, "webp", nil
	}

	return nil, "", err
}

// NormalizeToPNG - 업로드된 이미지를 canonical PNG(RGB)로 변환
// 원본 포맷과 무관하게 항상 RGB 변환 + PNG 재인코딩
func NormalizeToPNG(data []byte, contentType string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("file must be an image, got content type: %s", contentType)
	}

	img, format, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("invalid image file: %w", err)
	}

	out, err := EncodePNG(ToRGB(img))
	if err != nil {
		return nil, fmt.Errorf("invalid image file: %w", err)
	}

	log.Printf("🔄 Image normalized: %s (%d bytes) → png (%d bytes)", format, len(data), len(out))
	return out, nil
}

// ToRGB - 이미지를 RGB 색공간으로 변환 (YCbCr, palette 등 모두 NRGBA로)
func ToRGB(img image.Image) *image.NRGBA {
	if rgb, ok := img.(*image.NRGBA); ok {
		return rgb
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// EncodePNG - 이미지를 PNG 바이트로 인코딩
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isWebP - RIFF....WEBP 시그니처 확인
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP"))
}
