package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/prplkane/umazona-website/env"
)

// SMTPOptions configures the outbound contact-notification mailer.
// All fields empty means notifications are disabled.
type SMTPOptions struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	User string `toml:"user"`
	Pass string `toml:"pass"`
	From string `toml:"from"`
}

// Enabled reports whether enough SMTP settings exist to send mail.
func (s SMTPOptions) Enabled() bool {
	return s.Host != "" && s.Port > 0 && s.From != ""
}

// Options is the full runtime configuration. Values come from the
// environment, optionally overlaid by a TOML file pointed at by
// UMAZONA_CONFIG_PATH.
type Options struct {
	Port         string `toml:"port"`
	DatabasePath string `toml:"database_path"`
	UploadsDir   string `toml:"uploads_dir"`
	MirrorDir    string `toml:"mirror_dir"`
	LogLevel     string `toml:"log_level"`

	// AdminToken gates the /api/admin routes. Empty means the gate is a
	// no-op and admin routes are open; middleware warns loudly about it.
	AdminToken string `toml:"admin_token"`

	// DefaultParentFolderID is the Drive folder used when a children
	// listing cannot resolve its parent argument.
	DefaultParentFolderID string `toml:"default_parent_folder_id"`

	SMTP            SMTPOptions `toml:"smtp"`
	ContactNotifyTo string      `toml:"contact_notify_to"`
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Load builds Options from the environment with defaults, then overlays
// any values set in the optional TOML config file.
func Load() (*Options, error) {
	opts := &Options{
		Port:                  getEnv(env.EnvPort, "3000"),
		DatabasePath:          getEnv(env.EnvDatabasePath, "umazona.db"),
		UploadsDir:            getEnv(env.EnvUploadsDir, "uploads"),
		MirrorDir:             getEnv(env.EnvMirrorDir, ""),
		LogLevel:              getEnv(env.EnvLogLevel, "info"),
		AdminToken:            os.Getenv(env.EnvAdminToken),
		DefaultParentFolderID: os.Getenv(env.EnvDriveParentFolderID),
		ContactNotifyTo:       os.Getenv(env.EnvContactNotifyTo),
		SMTP: SMTPOptions{
			Host: os.Getenv(env.EnvSMTPHost),
			User: os.Getenv(env.EnvSMTPUser),
			Pass: os.Getenv(env.EnvSMTPPass),
			From: os.Getenv(env.EnvEmailFrom),
		},
	}

	if portStr := os.Getenv(env.EnvSMTPPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid integer: %w", env.EnvSMTPPort, err)
		}
		opts.SMTP.Port = port
	}

	if path := os.Getenv(env.EnvConfigPath); path != "" {
		if _, err := toml.DecodeFile(path, opts); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	return opts, nil
}
