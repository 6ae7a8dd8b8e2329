package debugsink

import (
	"context"
	"log"
	"os"
	"path/filepath"
)

// Sink - 원본 응답 바이트 덤프용 진단 싱크
// 디버그 용도의 best-effort 사이드 채널이므로 실패해도 응답에는 영향 없음
type Sink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// FileSink - 로컬 디스크에 덤프 파일 저장
type FileSink struct {
	dir string
}

// NewFileSink - FileSink 생성
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

func (s *FileSink) Save(ctx context.Context, name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("💾 Saved raw response data to %s (%d bytes)", path, len(data))
	return nil
}
