package conf

import (
	"path/filepath"
)

type LogConfig struct {
	Enable     bool   `json:"enable" env:"LOG_ENABLE"`
	Name       string `json:"name" env:"LOG_NAME"`
	MaxSize    int    `json:"max_size" env:"LOG_MAX_SIZE"`
	MaxBackups int    `json:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAge     int    `json:"max_age" env:"LOG_MAX_AGE"`
	Compress   bool   `json:"compress" env:"LOG_COMPRESS"`
}

// DriveConfig overrides the built-in protocol constants. Empty fields keep
// the defaults; the remote service changes undocumented parameters over
// time, so everything here is patchable without a rebuild.
type DriveConfig struct {
	Cookie       string `json:"cookie" env:"DRIVE_COOKIE"`
	APIBase      string `json:"api_base" env:"DRIVE_API_BASE"`
	PanBase      string `json:"pan_base" env:"DRIVE_PAN_BASE"`
	Referer      string `json:"referer" env:"DRIVE_REFERER"`
	UserAgent    string `json:"user_agent" env:"DRIVE_USER_AGENT"`
	Platform     string `json:"platform" env:"DRIVE_PLATFORM"`
	OSSDomain    string `json:"oss_domain" env:"DRIVE_OSS_DOMAIN"`
	OSSUserAgent string `json:"oss_user_agent" env:"DRIVE_OSS_USER_AGENT"`
	PartSize     int64  `json:"part_size" env:"DRIVE_PART_SIZE"`
}

type Config struct {
	Force bool        `json:"force" env:"FORCE"`
	Log   LogConfig   `json:"log"`
	Drive DriveConfig `json:"drive"`
}

func DefaultConfig(dataDir string) *Config {
	logPath := filepath.Join(dataDir, "log/log.log")
	return &Config{
		Log: LogConfig{
			Enable:     true,
			Name:       logPath,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
		},
	}
}
