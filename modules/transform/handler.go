package transform

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"time-travel-server/modules/common/utils"
)

type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler - Transform 핸들러 생성
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:   service,
		maxUpload: maxUploadBytes,
	}
}

// RegisterRoutes - 라우터에 Transform 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/transform-image/", h.TransformImage).Methods("POST", "OPTIONS")
	log.Println("✅ Transform routes registered: /transform-image/")
}

// TransformImage - 이미지 + 연도를 받아 변환된 PNG를 스트리밍
func (h *Handler) TransformImage(w http.ResponseWriter, r *http.Request) {
	// OPTIONS 요청 처리 (CORS preflight)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	requestID := uuid.New().String()

	// multipart 파싱
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		log.Printf("❌ [%s] Failed to parse multipart form: %v", requestID, err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	// year 파싱
	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		log.Printf("❌ [%s] Invalid year: %q", requestID, r.FormValue("year"))
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	// 파일 읽기
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ [%s] Missing file field: %v", requestID, err)
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ [%s] Failed to read upload: %v", requestID, err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	log.Printf("📥 [%s] Uploaded file size: %d bytes, content_type: %s, year: %d",
		requestID, len(imageData), contentType, year)

	// 1. 정규화 (검증 + RGB 변환 + PNG 재인코딩)
	pngData, err := utils.NormalizeToPNG(imageData, contentType)
	if err != nil {
		log.Printf("❌ [%s] Normalization failed: %v", requestID, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// 2. Gemini 호출 + 응답 언래핑
	out, err := h.service.Transform(r.Context(), pngData, year)
	if err != nil {
		log.Printf("❌ [%s] Transform failed: %v", requestID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// 3. PNG 스트리밍 응답
	filename := fmt.Sprintf(downloadFilenameFormat, year)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("⚠️  [%s] Failed to write response: %v", requestID, err)
		return
	}

	log.Printf("✅ [%s] Returning transformed image for year %d (%d bytes)", requestID, year, len(out))
}

// writeError - JSON 에러 응답 작성
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Detail: detail})
}
