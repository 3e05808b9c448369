package config

import (
	"time"

	"github.com/EVCare-Admin/EVCare-Admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Carrier   Carrier
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	JWTSecret      string  `toml:"jwtSecret"` // signing secret for API bearer tokens
	Session        Session // session settings
}

// Carrier holds the shipping-carrier API settings.
type Carrier struct {
	BaseURL string        `toml:"baseUrl"`
	Token   string        // bearer token, may be empty for anonymous probes
	Timeout time.Duration // per-request timeout
}
