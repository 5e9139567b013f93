package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/examdesk/internal/flagx"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "EXAMDESK_"

// parseEnv loads an optional dotenv file (-env, or ./.env when present) and
// then overlays EXAMDESK_* variables onto config. Variables already set in the
// process environment win over the file. Malformed values panic.
func parseEnv(config *Config) {
	loadDotenv(flagx.EnvFileFlag())

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}

	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("PUBLIC_BASE_URL", &config.PublicBaseURL)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("LOG_LEVEL", &config.LogLevel)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)

	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	dur("PRESIGN_TTL", &config.PresignTTL)

	str("REDIS_ADDR", &config.RedisAddr)
	str("REDIS_PASSWORD", &config.RedisPassword)
	num("REDIS_DB", &config.RedisDB)

	str("GATEWAY_BASE_URL", &config.GatewayBaseURL)
	str("GATEWAY_KEY_ID", &config.GatewayKeyID)
	str("GATEWAY_KEY_SECRET", &config.GatewayKeySecret)
	str("GATEWAY_WEBHOOK_SECRET", &config.GatewayWebhookSecret)
	dur("GATEWAY_TIMEOUT", &config.GatewayTimeout)
	str("CURRENCY", &config.Currency)

	if v, ok := os.LookupEnv(EnvPrefix + "SUPERUSER_KINDS"); ok {
		config.SuperUserKinds = splitList(v)
	}
	dur("SESSION_TTL", &config.SessionTTL)
	dur("EXAM_REFRESH_INTERVAL", &config.ExamRefreshInterval)
	dur("PROGRESS_GRACE", &config.ProgressGrace)
	num("ORDER_RATE_LIMIT", &config.OrderRateLimit)
	dur("ORDER_RATE_WINDOW", &config.OrderRateWindow)

	str("ADMIN_USER", &config.BootstrapAdminUser)
	str("ADMIN_PASSWORD", &config.BootstrapAdminPassword)
	str("LOGO_PATH", &config.LogoPath)
}

func loadDotenv(path string) {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
