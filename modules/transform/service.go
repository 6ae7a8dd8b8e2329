package transform

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"google.golang.org/genai"

	"time-travel-server/modules/common/config"
	"time-travel-server/modules/common/debugsink"
	"time-travel-server/modules/common/utils"
)

// contentGenerator - Gemini 호출 추상화 (*genai.Models가 구현)
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Service struct {
	generator contentGenerator
	sink      debugsink.Sink
	model     string
}

// NewService - Genai 클라이언트 초기화
func NewService(ctx context.Context, cfg *config.Config, sink debugsink.Sink) (*Service, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genai client: %w", err)
	}

	log.Println("✅ Transform service initialized (Genai)")
	return &Service{
		generator: genaiClient.Models,
		sink:      sink,
		model:     cfg.GeminiModel,
	}, nil
}

// Transform - 정규화된 PNG를 Gemini로 보내 변환된 PNG를 반환
// 재시도 없음, 타임아웃 오버라이드 없음 - 요청당 단 한 번 호출
func (s *Service) Transform(ctx context.Context, pngData []byte, year int) ([]byte, error) {
	prompt := fmt.Sprintf(promptTemplate, year)
	log.Printf("🎨 Processing image with prompt: %s", prompt)

	// Parts 구성 - 인라인 이미지 + 텍스트 프롬프트
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromBytes(pngData, "image/png"),
			genai.NewPartFromText(prompt),
		},
	}

	result, err := s.generator.GenerateContent(ctx, s.model, []*genai.Content{content}, nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	// 응답에서 첫 번째 인라인 이미지 파트 추출
	raw, err := extractInlineImage(result)
	if err != nil {
		return nil, err
	}
	log.Printf("📦 Transformed image data size: %d bytes", len(raw))

	// 원본 응답 바이트 덤프 (best-effort - 실패해도 무시)
	if s.sink != nil {
		name := fmt.Sprintf(debugFilenameFormat, year)
		if err := s.sink.Save(ctx, name, raw); err != nil {
			log.Printf("⚠️  Failed to save debug dump %s: %v", name, err)
		}
	}

	// base64 추측 디코딩 후 이미지 검증
	payload := speculativeBase64Decode(raw)
	img, _, err := utils.DecodeImage(payload)
	if err != nil {
		return nil, fmt.Errorf("error processing transformed image: %w", err)
	}

	// 최종 PNG 재인코딩
	out, err := utils.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("error processing transformed image: %w", err)
	}

	return out, nil
}

// extractInlineImage - 응답 파트 중 첫 번째 InlineData 파트의 바이트를 반환
func extractInlineImage(result *genai.GenerateContentResponse) ([]byte, error) {
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, ErrEmptyResult
}

// speculativeBase64Decode - 페이로드가 base64일 수도 있어 추측 디코딩
// 디코딩이 성공하면 디코딩 결과를, 실패하면 원본 바이트를 그대로 사용
// 주의: 우연히 유효한 base64인 바이너리는 잘못 디코딩될 수 있음 -
// API가 인코딩을 명시해 주기 전까지는 휴리스틱으로 남음
func speculativeBase64Decode(raw []byte) []byte {
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		log.Printf("⚠️  Base64 decoding failed: %v, using raw data", err)
		return raw
	}
	log.Printf("🔄 Base64 decoded data size: %d bytes", len(decoded))
	return decoded
}
