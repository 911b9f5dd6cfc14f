// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Kinoteka)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Kinoteka)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// ServerURL parses the configured service base URL.
func ServerURL() (*url.URL, error) {
	raw := strings.TrimSpace(viper.GetString(key.ServerURL))
	if raw == "" {
		return nil, fmt.Errorf("%s is not set", key.ServerURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key.ServerURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s must be an http(s) url, got %q", key.ServerURL, raw)
	}

	return u, nil
}

// Origin returns the origin that embedded players are told they are hosted on.
// An explicit server.origin wins; otherwise it is scheme://host of server.url.
func Origin() string {
	if origin := strings.TrimSpace(viper.GetString(key.ServerOrigin)); origin != "" {
		return strings.TrimSuffix(origin, "/")
	}

	u, err := ServerURL()
	if err != nil {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

// Timeout returns the per-request API timeout.
func Timeout() time.Duration {
	seconds := viper.GetInt(key.ServerTimeout)
	if seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
