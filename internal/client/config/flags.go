package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/examdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            address and port of the backend server
//	-http string         base URL of the server HTTP edge
//	-timeout duration    per-call deadline ("15s")
//	-delivery-delay duration  pause before saving an issued document
//	-o string            download directory
//	-db string           local history database file
//
// os.Args is filtered with flagx.FilterArgs so -c/-config does not collide.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-http", "-timeout", "-delivery-delay", "-o", "-db"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.HTTPBaseURL, "http", cfg.HTTPBaseURL, "server HTTP base URL")
	fs.DurationVar(&cfg.CallTimeout, "timeout", cfg.CallTimeout, "per-call timeout")
	fs.DurationVar(&cfg.DeliveryDelay, "delivery-delay", cfg.DeliveryDelay, "delay before an issued document is saved")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.HistoryFile, "db", cfg.HistoryFile, "local history database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
