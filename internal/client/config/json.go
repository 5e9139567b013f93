package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/examdesk/internal/flagx"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// JsonConfig is the JSON file layout. Durations accept "3s" style strings
// or integer nanoseconds. Only keys present in the file override Config.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	HTTPBaseURL        string          `json:"http_base_url"`
	CallTimeout        *timex.Duration `json:"call_timeout"`
	DeliveryDelay      *timex.Duration `json:"delivery_delay"`
	DownloadDir        string          `json:"download_dir"`
	HistoryFile        string          `json:"history_file"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.HTTPBaseURL != "" {
		cfg.HTTPBaseURL = jc.HTTPBaseURL
	}
	if jc.CallTimeout != nil {
		cfg.CallTimeout = jc.CallTimeout.Duration
	}
	if jc.DeliveryDelay != nil {
		cfg.DeliveryDelay = jc.DeliveryDelay.Duration
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.HistoryFile != "" {
		cfg.HistoryFile = jc.HistoryFile
	}
}
