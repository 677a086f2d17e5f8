package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

const (
	AuthOAuth          = "oauth"
	AuthServiceAccount = "service-account"

	StrikeThrough   = "strikethrough"
	StrikeUnderline = "underline"
)

type Config struct {
	// CredentialsPath is the path to Google OAuth client credentials JSON, or
	// to a service account key when AuthMode is "service-account".
	CredentialsPath string `toml:"credentials_path"`

	// TokenPath is the path where the OAuth token is stored.
	TokenPath string `toml:"token_path"`

	// AuthMode selects "oauth" (installed app flow) or "service-account".
	AuthMode string `toml:"auth_mode"`

	// Debug enables verbose logging.
	Debug bool `toml:"debug"`

	// BatchSize caps the number of requests sent in one batchUpdate call.
	BatchSize int `toml:"batch_size"`

	// RequestsPerMinute paces batchUpdate calls. Zero disables pacing.
	RequestsPerMinute int `toml:"requests_per_minute"`

	// MaxRetries is how many times a rate-limited or failed batch is resent.
	MaxRetries int `toml:"max_retries"`

	// StrikeStyle is the text style applied to ~text~ spans.
	StrikeStyle string `toml:"strike_style"`

	// QuoteIndentPt is the start indent, in points, per block quote level.
	QuoteIndentPt float64 `toml:"quote_indent_pt"`

	// PreserveBlankLines inserts an empty paragraph for every blank line.
	PreserveBlankLines bool `toml:"preserve_blank_lines"`

	// RegistryPath is the SQLite database recording published documents.
	RegistryPath string `toml:"registry_path"`

	// ShareRole is the Drive role granted when a document is shared.
	ShareRole string `toml:"share_role"`
}

func DefaultConfig() *Config {
	return &Config{
		CredentialsPath:   filepath.Join(GetConfigDir(), "credentials.json"),
		TokenPath:         filepath.Join(GetDataDir(), "token.json"),
		AuthMode:          AuthOAuth,
		Debug:             false,
		BatchSize:         120,
		RequestsPerMinute: 60,
		MaxRetries:        3,
		StrikeStyle:       StrikeThrough,
		QuoteIndentPt:     18,
		RegistryPath:      filepath.Join(GetDataDir(), "registry.db"),
		ShareRole:         "writer",
	}
}

// Validate reports settings that would make a publish pass fail later.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CredentialsPath, validation.Required),
		validation.Field(&c.AuthMode, validation.Required, validation.In(AuthOAuth, AuthServiceAccount)),
		validation.Field(&c.TokenPath, validation.When(c.AuthMode == AuthOAuth, validation.Required)),
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1), validation.Max(500)),
		validation.Field(&c.RequestsPerMinute, validation.Min(0)),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
		validation.Field(&c.StrikeStyle, validation.In(StrikeThrough, StrikeUnderline)),
		validation.Field(&c.QuoteIndentPt, validation.Min(0.0)),
		validation.Field(&c.ShareRole, validation.In("reader", "commenter", "writer")),
	)
}

func ConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// LoadConfig reads the default config file, creating it when missing.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads the config file at path. An empty path means ConfigPath(), which
// is created with defaults on first use. Keys missing from the file keep their
// default values; relative paths in it are taken from the file's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			if err := SaveConfig(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.CredentialsPath, &cfg.TokenPath, &cfg.RegistryPath} {
		*p, err = resolvePath(dir, *p)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(GetConfigDir(), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0o644)
}

func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}
