package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/flagx"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// JsonConfig is the JSON file layout. Durations accept "1m" style strings
// or integer nanoseconds. Only keys present in the file override Config.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	PublicBaseURL    string `json:"public_base_url"`
	DatabaseDSN      string `json:"database_dsn"`
	LogLevel         string `json:"log_level"`

	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`

	S3RootUser     string          `json:"s3_root_user"`
	S3RootPassword string          `json:"s3_root_password"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3BaseEndpoint string          `json:"s3_base_endpoint"`
	PresignTTL     *timex.Duration `json:"presign_ttl"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       *int   `json:"redis_db"`

	GatewayBaseURL       string          `json:"gateway_base_url"`
	GatewayKeyID         string          `json:"gateway_key_id"`
	GatewayKeySecret     string          `json:"gateway_key_secret"`
	GatewayWebhookSecret string          `json:"gateway_webhook_secret"`
	GatewayTimeout       *timex.Duration `json:"gateway_timeout"`
	Currency             string          `json:"currency"`

	SuperUserKinds      []string        `json:"superuser_kinds"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	ExamRefreshInterval *timex.Duration `json:"exam_refresh_interval"`
	ProgressGrace       *timex.Duration `json:"progress_grace"`
	OrderRateLimit      *int            `json:"order_rate_limit"`
	OrderRateWindow     *timex.Duration `json:"order_rate_window"`

	BootstrapAdminUser     string `json:"admin_user"`
	BootstrapAdminPassword string `json:"admin_password"`
	LogoPath               string `json:"logo_path"`
}

// parseJson loads the file named by -c/-config, if any, and overlays the
// keys it sets onto config. Unreadable files or invalid JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setStr(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setStr(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setStr(&config.PublicBaseURL, c.PublicBaseURL)
	setStr(&config.DatabaseDSN, c.DatabaseDSN)
	setStr(&config.LogLevel, c.LogLevel)
	setStr(&config.SecretKey, c.SecretKey)
	setDur(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)

	setStr(&config.S3RootUser, c.S3RootUser)
	setStr(&config.S3RootPassword, c.S3RootPassword)
	setStr(&config.S3Bucket, c.S3Bucket)
	setStr(&config.S3Region, c.S3Region)
	setStr(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDur(&config.PresignTTL, c.PresignTTL)

	setStr(&config.RedisAddr, c.RedisAddr)
	setStr(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}

	setStr(&config.GatewayBaseURL, c.GatewayBaseURL)
	setStr(&config.GatewayKeyID, c.GatewayKeyID)
	setStr(&config.GatewayKeySecret, c.GatewayKeySecret)
	setStr(&config.GatewayWebhookSecret, c.GatewayWebhookSecret)
	setDur(&config.GatewayTimeout, c.GatewayTimeout)
	setStr(&config.Currency, c.Currency)

	if c.SuperUserKinds != nil {
		config.SuperUserKinds = c.SuperUserKinds
	}
	setDur(&config.SessionTTL, c.SessionTTL)
	setDur(&config.ExamRefreshInterval, c.ExamRefreshInterval)
	setDur(&config.ProgressGrace, c.ProgressGrace)
	if c.OrderRateLimit != nil {
		config.OrderRateLimit = *c.OrderRateLimit
	}
	setDur(&config.OrderRateWindow, c.OrderRateWindow)

	setStr(&config.BootstrapAdminUser, c.BootstrapAdminUser)
	setStr(&config.BootstrapAdminPassword, c.BootstrapAdminPassword)
	setStr(&config.LogoPath, c.LogoPath)
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDur(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
