// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/soxlite/api/logging"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

// InitRedis connects the shared client. It is only called when
// redis.enabled is set.
func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if err := SetEncryptionKey([]byte(viper.GetString("redis.encryptionKey"))); err != nil {
		return err
	}

	logger.Info("Successfully connected to Redis", zap.String("addr", viper.GetString("redis.addr")))
	return nil
}

// SetEncryptionKey installs the AES-256 key used for cached reports
func SetEncryptionKey(key []byte) error {
	if len(key) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}
	encryptionKey = key
	return nil
}

// Enabled reports whether a client has been initialised
func Enabled() bool {
	return RedisClient != nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// sealJSON marshals and encrypts v into the base64 form stored in Redis
func sealJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	sealed, err := encrypt(raw)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt cache entry: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func openJSON(s string, out interface{}) error {
	sealed, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("failed to decode cache entry: %w", err)
	}
	raw, err := decrypt(sealed)
	if err != nil {
		return fmt.Errorf("failed to decrypt cache entry: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return nil
}

// CacheJSON stores v encrypted under key. A zero ttl uses redis.defaultCacheTTL.
func CacheJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	value, err := sealJSON(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = viper.GetDuration("redis.defaultCacheTTL")
	}
	if err := RedisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	logger.Debug("Cache entry stored", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetCachedJSON loads key into out. found is false on a miss.
func GetCachedJSON(ctx context.Context, key string, out interface{}) (found bool, err error) {
	value, err := RedisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	if err := openJSON(value, out); err != nil {
		return false, err
	}
	logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

// RateLimit is a sliding-window counter over a sorted set
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
