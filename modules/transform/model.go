package transform

import "errors"

// 프롬프트 템플릿 - year만 치환되는 고정 형태
const promptTemplate = "Transform this image to look like it was in %d, realistic style."

// 응답 파일명 / 디버그 덤프 파일명 형식
const (
	downloadFilenameFormat = "time_travel_%d.png"
	debugFilenameFormat    = "debug_response_%d.bin"
)

// ErrEmptyResult - 모델 응답에 이미지 파트가 하나도 없는 경우
var ErrEmptyResult = errors.New("no image data found in Gemini API response")

// ErrorResponse - HTTP 에러 응답 구조체
type ErrorResponse struct {
	Detail string `json:"detail"`
}
