package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// Profile selects how the bot is deployed.
type Profile int

const (
	// ProfileGuild registers the command to a single guild (GUILD_ID).
	ProfileGuild Profile = iota
	// ProfileGlobal registers the command globally and serves the keep-alive page.
	ProfileGlobal
)

func (p Profile) String() string {
	switch p {
	case ProfileGuild:
		return "guild"
	case ProfileGlobal:
		return "global"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

const (
	EnvToken               = "DISCORD_TOKEN"
	EnvGuildID             = "GUILD_ID"
	EnvPort                = "PORT"
	EnvEnv                 = "SHUTUP_ENV"
	EnvHealthcheckEndpoint = "SHUTUP_HEALTHCHECK_ENDPOINT"
	EnvLogLevel            = "LOG_LEVEL"

	DefaultPort = 5000
)

var (
	ErrMissingToken   = errors.New(EnvToken + " environment variable is not set")
	ErrMissingGuildID = errors.New(EnvGuildID + " environment variable is not set")
	ErrInvalidGuildID = errors.New(EnvGuildID + " environment variable is not a valid integer")
	ErrInvalidPort    = errors.New(EnvPort + " environment variable is not a valid port")
)

// Config is loaded once at startup and never modified afterwards.
type Config struct {
	Profile             Profile
	Token               string
	GuildID             snowflake.ID // zero unless Profile is ProfileGuild
	Port                int
	Env                 string
	HealthcheckEndpoint string
	LogLevel            string
}

// Load reads the configuration for the given profile from the process environment.
func Load(profile Profile) (Config, error) {
	return LoadFrom(os.Getenv, profile)
}

// LoadFrom reads the configuration using getenv to look up variables.
func LoadFrom(getenv func(string) string, profile Profile) (Config, error) {
	cfg := Config{
		Profile:             profile,
		Token:               strings.TrimSpace(getenv(EnvToken)),
		Port:                DefaultPort,
		Env:                 getenv(EnvEnv),
		HealthcheckEndpoint: getenv(EnvHealthcheckEndpoint),
		LogLevel:            getenv(EnvLogLevel),
	}
	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}

	switch profile {
	case ProfileGuild:
		raw := strings.TrimSpace(getenv(EnvGuildID))
		if raw == "" {
			return Config{}, ErrMissingGuildID
		}
		id, err := snowflake.Parse(raw)
		if err != nil || id == 0 {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidGuildID, raw)
		}
		cfg.GuildID = id
	case ProfileGlobal:
		if raw := strings.TrimSpace(getenv(EnvPort)); raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil || port < 1 || port > 65535 {
				return Config{}, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
			}
			cfg.Port = port
		}
	default:
		return Config{}, fmt.Errorf("unknown profile %s", profile)
	}

	return cfg, nil
}
