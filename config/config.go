package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/yallarent/yallarent/pkg/common"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP listener settings. Secret signs admin JWTs.
type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
	// JwtExpireHours is the admin token lifetime in hours.
	JwtExpireHours int `yaml:"jwt_expire_hours" json:"jwt_expire_hours"`
}

// StoreConfig holds the durable store and seed-resource settings.
type StoreConfig struct {
	// Path of the bbolt database file; relative paths resolve under Workdir.
	Path string `yaml:"path" json:"path"`
	// SeedDir holds the static seed JSON documents (cars.json, branches.json,
	// offers.json, siteConfig.json).
	SeedDir string `yaml:"seed_dir" json:"seed_dir"`
	// SeedURL, when set, is tried before SeedDir: <SeedURL>/<key>.json.
	SeedURL string `yaml:"seed_url" json:"seed_url"`
	// BackupKeep is how many nightly backup files are retained.
	BackupKeep int `yaml:"backup_keep" json:"backup_keep"`
}

// SmtpConfig holds the outgoing mail settings for customer reminders and
// booking alerts. Notifications are logged instead of sent when disabled.
type SmtpConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System SysConfig   `yaml:"system" json:"system"`
	Web    WebConfig   `yaml:"web" json:"web"`
	Store  StoreConfig `yaml:"store" json:"store"`
	Smtp   SmtpConfig  `yaml:"smtp" json:"smtp"`
	Logger LogConfig   `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "YallaRent",
		Location: "Asia/Dubai",
		Workdir:  "/var/yallarent",
		Debug:    true,
	},
	Web: WebConfig{
		Host:           "0.0.0.0",
		Port:           1816,
		Secret:         "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
		JwtExpireHours: 24,
	},
	Store: StoreConfig{
		Path:       "yallarent.db",
		SeedDir:    "seeds",
		SeedURL:    "",
		BackupKeep: 7,
	},
	Smtp: SmtpConfig{
		Enabled: false,
		Host:    "localhost",
		Port:    25,
		From:    "noreply@yallarent.example",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "yallarent.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

// LoadConfig reads the YAML config file when it exists and applies environment
// overrides on top; with no file the defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" && common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(errors.Wrap(err, "read config file"))
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(errors.Wrap(err, "parse config file"))
		}
	}

	setEnvValue("YALLARENT_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("YALLARENT_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("YALLARENT_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("YALLARENT_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("YALLARENT_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("YALLARENT_STORE_PATH", func(v string) { cfg.Store.Path = v })
	setEnvValue("YALLARENT_STORE_SEED_DIR", func(v string) { cfg.Store.SeedDir = v })
	setEnvValue("YALLARENT_STORE_SEED_URL", func(v string) { cfg.Store.SeedURL = v })
	setEnvValue("YALLARENT_SMTP_ENABLED", func(v string) { cfg.Smtp.Enabled = cast.ToBool(v) })
	setEnvValue("YALLARENT_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvValue("YALLARENT_SMTP_PORT", func(v string) { cfg.Smtp.Port = cast.ToInt(v) })
	setEnvValue("YALLARENT_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("YALLARENT_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("YALLARENT_SMTP_FROM", func(v string) { cfg.Smtp.From = v })
	setEnvValue("YALLARENT_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}
