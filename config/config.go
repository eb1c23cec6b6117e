package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "WORKHOURS"

const (
	KeyServerPort             = "server.port"
	KeyServerStaticDir        = "server.static_dir"
	KeyServerSessionTTL       = "server.session_ttl"
	KeyDatabaseDriver         = "database.driver"
	KeyDatabasePath           = "database.path"
	KeyAdminPassword          = "admin.password"
	KeyAdminDeletePassword    = "admin.delete_password"
	KeyEntriesCaseInsensitive = "entries.case_insensitive_names"
	KeyLogLevel               = "log.level"
	KeyLogFormat              = "log.format"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Entries  EntriesConfig  `mapstructure:"entries"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port" validate:"min=1,max=65535"`
	StaticDir  string        `mapstructure:"static_dir"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite sqlite3"`
	Path   string `mapstructure:"path" validate:"required"`
}

type AdminConfig struct {
	Password string `mapstructure:"password"`
	// DeletePassword gates the bulk delete endpoint; empty disables it.
	DeletePassword string `mapstructure:"delete_password"`
}

type EntriesConfig struct {
	CaseInsensitiveNames bool `mapstructure:"case_insensitive_names"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

var ErrAdminPasswordMissing = errors.New("admin.password is required to serve (set it in the config file or WORKHOURS_ADMIN_PASSWORD)")

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// BindEnv makes every known key overridable as WORKHOURS_<SECTION>_<KEY>.
func BindEnv() {
	bindEnv(viper.GetViper())
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored and variables
// that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ValidateServe checks the values only the HTTP server needs.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.Admin.Password) == "" {
		return ErrAdminPasswordMissing
	}
	return nil
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# workhours configuration
server:
  port: 3000
  static_dir: ""
  session_ttl: 12h

database:
  # sqlite (pure Go) or sqlite3 (cgo)
  driver: sqlite
  # file path or ":memory:"
  path: ./workhours.db

admin:
  password: ""
  delete_password: ""

entries:
  case_insensitive_names: true

log:
  level: info
  format: json
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerPort, 3000)
	v.SetDefault(KeyServerStaticDir, "")
	v.SetDefault(KeyServerSessionTTL, 12*time.Hour)
	v.SetDefault(KeyDatabaseDriver, "sqlite")
	v.SetDefault(KeyDatabasePath, "./workhours.db")
	v.SetDefault(KeyAdminPassword, "")
	v.SetDefault(KeyAdminDeletePassword, "")
	v.SetDefault(KeyEntriesCaseInsensitive, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
