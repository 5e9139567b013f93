package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/examdesk/internal/flagx"
)

var flagNames = []string{
	"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e",
	"-http", "-public-url", "-log-level",
	"-redis", "-redis-password", "-redis-db",
	"-gateway-url", "-gateway-key", "-gateway-secret", "-webhook-secret",
	"-superuser-kinds", "-session-ttl", "-refresh-interval",
	"-admin-user", "-admin-password", "-logo",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-http string  HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      admin access token validity, minutes
//	-u, -p, -b, -g, -e  S3 user, password, bucket, region, endpoint
//	-redis, -redis-password, -redis-db
//	-gateway-url, -gateway-key, -gateway-secret, -webhook-secret
//	-superuser-kinds  comma separated item kinds a super user may bypass
//	-session-ttl, -refresh-interval  durations ("30m", "10s")
//	-admin-user, -admin-password  bootstrap admin account
//	-logo string  letterhead logo file
//
// os.Args is filtered with flagx.FilterArgs first so -c/-env and flags of
// other components do not collide. A parse error panics.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "http", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.PublicBaseURL, "public-url", config.PublicBaseURL, "public base URL of the HTTP server")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "redis-password", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "redis-db", config.RedisDB, "redis database")

	fs.StringVar(&config.GatewayBaseURL, "gateway-url", config.GatewayBaseURL, "payment gateway API base URL")
	fs.StringVar(&config.GatewayKeyID, "gateway-key", config.GatewayKeyID, "payment gateway key id")
	fs.StringVar(&config.GatewayKeySecret, "gateway-secret", config.GatewayKeySecret, "payment gateway key secret")
	fs.StringVar(&config.GatewayWebhookSecret, "webhook-secret", config.GatewayWebhookSecret, "payment gateway webhook secret")

	superUserKinds := fs.String("superuser-kinds", strings.Join(config.SuperUserKinds, ","), "item kinds a super user may take without payment")
	fs.DurationVar(&config.SessionTTL, "session-ttl", config.SessionTTL, "wizard session lifetime")
	fs.DurationVar(&config.ExamRefreshInterval, "refresh-interval", config.ExamRefreshInterval, "exam list push interval")

	fs.StringVar(&config.BootstrapAdminUser, "admin-user", config.BootstrapAdminUser, "bootstrap admin user name")
	fs.StringVar(&config.BootstrapAdminPassword, "admin-password", config.BootstrapAdminPassword, "bootstrap admin password")
	fs.StringVar(&config.LogoPath, "logo", config.LogoPath, "letterhead logo (PNG or JPEG)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.SuperUserKinds = splitList(*superUserKinds)
}
