package profile

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hrygo/aitime/internal/timezone"
)

// EnvPrefix is prepended to every environment key, e.g. AITIME_TIMEZONE.
const EnvPrefix = "AITIME"

// Configuration keys.
const (
	KeyMode       = "mode"
	KeyTimezone   = "timezone"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyBatchLimit = "batch-limit"
)

// Profile is the configuration of the time parsing tools.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Timezone is the default IANA zone for parsing
	Timezone string
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// LogFormat is "text" or "json"
	LogFormat string
	// BatchLimit bounds concurrent parses in a batch
	BatchLimit int

	level slog.Level
}

// NewViper returns a viper instance with defaults and AITIME_* env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMode, "dev")
	v.SetDefault(KeyTimezone, "Asia/Shanghai")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyBatchLimit, 8)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper reads a profile out of v.
func FromViper(v *viper.Viper) *Profile {
	return &Profile{
		Mode:       v.GetString(KeyMode),
		Timezone:   v.GetString(KeyTimezone),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		BatchLimit: v.GetInt(KeyBatchLimit),
	}
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate normalizes the profile and rejects unusable values.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if _, err := timezone.Parse(p.Timezone); err != nil {
		return err
	}

	if err := p.level.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return errors.Wrapf(err, "invalid log level %q", p.LogLevel)
	}

	switch p.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", p.LogFormat)
	}

	if p.BatchLimit <= 0 {
		return errors.Errorf("batch limit must be positive, got %d", p.BatchLimit)
	}
	return nil
}

// NewLogger builds the slog logger the profile describes. Call Validate first.
func (p *Profile) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: p.level, AddSource: p.IsDev() && p.level == slog.LevelDebug}
	if p.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
