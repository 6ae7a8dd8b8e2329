package debugsink

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"time-travel-server/modules/common/config"
)

// 덤프 보관 기간 - 진단용이므로 길게 둘 이유가 없음
const debugTTL = 24 * time.Hour

// RedisSink - 디스크가 휘발성인 배포 환경(Render 등)용 Redis 덤프 싱크
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink - Redis 연결 생성
func NewRedisSink(cfg *config.Config) *RedisSink {
	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	// TLS 설정 (InsecureSkipVerify 추가)
	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // Render.com Redis용
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	return &RedisSink{client: rdb}
}

func (s *RedisSink) Save(ctx context.Context, name string, data []byte) error {
	key := fmt.Sprintf("debug:%s", name)
	if err := s.client.Set(ctx, key, data, debugTTL).Err(); err != nil {
		return err
	}
	log.Printf("💾 Saved raw response data to Redis key %s (%d bytes)", key, len(data))
	return nil
}
