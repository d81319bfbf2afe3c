// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                   – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `REQV_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with `vault:` is resolved through the
// Vault client *before* unmarshalling, so the model never stores Vault
// references, only plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import (
	"strings"
	"time"
)

//
// HTTP section
//

// HTTP holds web-server tunables for `reqvalidator serve`.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Requirements section
//

// Requirements points at the requirements catalog.
//
// `DSN` may carry one `%s` verb; when it does, `Password` (normally a
// `vault:` reference) is substituted into it at runtime.  This keeps
// credentials out of flat files.
type Requirements struct {
	Driver       string        `koanf:"driver"         validate:"required,oneof=mysql postgres"`
	DSN          string        `koanf:"dsn"            validate:"required"`
	Password     string        `koanf:"password"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int           `koanf:"max_idle_conns" validate:"gte=0"`
	MaxVersions  int           `koanf:"max_versions"   validate:"gte=0"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"  validate:"gte=0"`
}

// ResolvedDSN returns DSN with Password substituted for its `%s` verb.
func (r Requirements) ResolvedDSN() string {
	if r.Password == "" || !strings.Contains(r.DSN, "%s") {
		return r.DSN
	}
	return strings.Replace(r.DSN, "%s", r.Password, 1)
}

//
// Validation section
//

// Validation tunes the content rules.  Empty values fall back to the
// engine defaults.
type Validation struct {
	NumericValueTypes     []string `koanf:"numeric_value_types"`
	BloodPressureFeatures []string `koanf:"blood_pressure_features"`
	BloodPressurePattern  string   `koanf:"blood_pressure_pattern"`
	Workers               int      `koanf:"workers" validate:"gte=0"`
}

//
// Log section
//

// Log selects the log directory (relative to root) and minimum level.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // REQV_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the aggregate returned by Load().  Treat it as read-only.
type Config struct {
	HTTP         HTTP         `koanf:"http"`
	Requirements Requirements `koanf:"requirements"`
	Validation   Validation   `koanf:"validation"`
	Log          Log          `koanf:"log"`
	Paths        Paths        `koanf:"-"`
}

// applyDefaults fills optional fields left empty by every layer.
func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Requirements.FetchTimeout == 0 {
		c.Requirements.FetchTimeout = 30 * time.Second
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
