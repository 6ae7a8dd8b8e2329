package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"time-travel-server/modules/common/config"
	"time-travel-server/modules/common/debugsink"
	"time-travel-server/modules/transform"
)

func main() {
	// 환경변수 로드 - GEMINI_API_KEY가 없으면 서버를 띄우지 않음
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 디버그 싱크 선택 (REDIS_HOST가 있으면 Redis, 없으면 로컬 파일)
	var sink debugsink.Sink
	if cfg.RedisHost != "" {
		sink = debugsink.NewRedisSink(cfg)
	} else {
		sink = debugsink.NewFileSink(cfg.DebugDir)
	}

	// Transform 서비스 초기화
	service, err := transform.NewService(context.Background(), cfg, sink)
	if err != nil {
		log.Fatalf("❌ Failed to initialize transform service: %v", err)
	}

	// 라우터 설정
	r := mux.NewRouter()

	// CORS 미들웨어 적용
	r.Use(enableCORS)

	// 라우트 설정
	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	transform.NewHandler(service, cfg.MaxUploadBytes()).RegisterRoutes(r)

	log.Printf("🚀 Time Travel Image Transformer starting on port %s", cfg.Port)
	log.Printf("🖼️  Transform endpoint: http://localhost:%s/transform-image/", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Time Travel Image Transformer API is running",
	})
}
