// internal/config/model.go
//
// Typed configuration model for the pizza order client and API.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `PIZZA_`-prefixed environment overrides – highest precedence.
//
// Defaults() seeds every field first, so an empty or missing YAML file
// still yields a runnable configuration.  Validation happens immediately
// after unmarshal; the app fails fast on malformed values.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section (order API)
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr  string   `koanf:"listen_addr"  validate:"required,hostname_port"`
	CORSOrigins []string `koanf:"cors_origins"`
	ForceHTTPS  bool     `koanf:"force_https"`
}

//
// Client section (order form)
//

// Client configures the order form's HTTP submitter.
type Client struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout"  validate:"gte=0"`
}

//
// Form section
//

// Form selects the form's validation and recovery behaviour.
type Form struct {
	ValidationMode string `koanf:"validation_mode" validate:"oneof=change submit"`
	FailurePolicy  string `koanf:"failure_policy"  validate:"oneof=retain clear"`
	Definition     string `koanf:"definition"` // optional YAML path; embedded when empty
}

//
// Database section
//

// Database holds the optional order store DSN.  When DSN is empty and
// VaultPath is set, the DSN is read from that KV-v2 secret.  With neither,
// orders live only in the in-memory recent list.
type Database struct {
	DSN       string `koanf:"dsn"`
	VaultPath string `koanf:"vault_path"` // e.g. secret/pizza/db
	VaultKey  string `koanf:"vault_key" validate:"required_with=VaultPath"`
}

// Orders tunes the order API's bookkeeping.
type Orders struct {
	RecentLimit int    `koanf:"recent_limit" validate:"gte=1"`
	GeoIPDB     string `koanf:"geoip_db"` // optional GeoLite2 path; no country lookup when empty
}

// Log selects where and how verbosely to log.
type Log struct {
	Dir   string `koanf:"dir"` // relative paths resolve against Paths.Root
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // PIZZA_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Client   Client   `koanf:"client"`
	Form     Form     `koanf:"form"`
	Database Database `koanf:"database"`
	Orders   Orders   `koanf:"orders"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}

// Defaults returns the configuration used for anything the overlays leave
// unset.
func Defaults() Config {
	return Config{
		HTTP:     HTTP{ListenAddr: ":9009", CORSOrigins: []string{"*"}},
		Client:   Client{BaseURL: "http://localhost:9009", Timeout: 10 * time.Second},
		Form:     Form{ValidationMode: "change", FailurePolicy: "retain"},
		Database: Database{VaultKey: "dsn"},
		Orders:   Orders{RecentLimit: 50},
		Log:      Log{Dir: "logs", Level: "info"},
	}
}
