// config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Log           LogConfiguration
	Redis         RedisConfiguration
	RateLimit     RateLimitConfiguration
	Elasticsearch ElasticsearchConfiguration
	Notifier      NotifierConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port           string
	MaxUploadMB    int64
	RequestTimeout time.Duration
}

type LogConfiguration struct {
	Dir string
}

// RedisConfiguration stores data for Redis connection. The cache and the
// rate limiter are skipped when Enabled is false.
type RedisConfiguration struct {
	Enabled         bool
	Addr            string
	Password        string
	DB              int
	DefaultCacheTTL string
	EncryptionKey   string
}

type RateLimitConfiguration struct {
	Requests int
	Window   time.Duration
}

// ElasticsearchConfiguration stores data for the scan audit index
type ElasticsearchConfiguration struct {
	Enabled bool
	URL     string
	Index   string
}

// NotifierConfiguration stores the outbound alert webhook
type NotifierConfiguration struct {
	WebhookURL string
	Timeout    time.Duration
}

var config *Configuration

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.maxUploadMB", 20)
	viper.SetDefault("server.requestTimeout", "30s")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("redis.encryptionKey", "")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("elasticsearch.enabled", false)
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.index", "compliance-scans")
	viper.SetDefault("audit.timeout", "5s")
	viper.SetDefault("notifier.webhookURL", "")
	viper.SetDefault("notifier.timeout", "5s")
}

func InitConfig() error {
	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// SERVER_PORT, REDIS_ENABLED, ...
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("notifier.webhookURL", "SLACK_WEBHOOK_URL"); err != nil {
		return err
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	return viper.Unmarshal(&config)
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
