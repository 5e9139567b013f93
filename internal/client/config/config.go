package config

import "time"

// Config holds runtime settings for the ExamDesk CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - HTTPBaseURL: base URL of the server's HTTP edge, used for document
//     re-download by id.
//   - CallTimeout: deadline applied to every unary call.
//   - DeliveryDelay: pause before a freshly issued document is saved.
//   - DownloadDir: where documents are written.
//   - HistoryFile: SQLite file remembering saved documents and the last
//     identifier used.
type Config struct {
	ServerEndpointAddr string
	HTTPBaseURL        string
	CallTimeout        time.Duration
	DeliveryDelay      time.Duration
	DownloadDir        string
	HistoryFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.HTTPBaseURL = "http://127.0.0.1:8080"
	c.CallTimeout = 15 * time.Second
	c.DeliveryDelay = 1500 * time.Millisecond
	c.DownloadDir = "."
	c.HistoryFile = "examdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
