package config

import (
	"errors"
	"fmt"

	"store-locator/internal/render"

	"github.com/spf13/viper"
)

// Config holds everything the binaries need: the injected Maps credential,
// optional database source for the location cache, server address, output
// directory and renderer policies.
type Config struct {
	MapsAPIKey              string `mapstructure:"MAPS_API_KEY"`
	DBSource                string `mapstructure:"DB_SOURCE"`
	ServerAddress           string `mapstructure:"SERVER_ADDRESS"`
	OutputDir               string `mapstructure:"OUTPUT_DIR"`
	OnMiss                  string `mapstructure:"ON_MISS"`
	AllowDuplicateAddresses bool   `mapstructure:"ALLOW_DUPLICATE_ADDRESSES"`
}

// LoadConfig reads configuration from app.env in the given directory and from
// the environment. A missing file is fine; environment variables alone are
// enough.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("OUTPUT_DIR", "html")
	v.SetDefault("ON_MISS", "placeholder")
	v.SetDefault("MAPS_API_KEY", "")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("ALLOW_DUPLICATE_ADDRESSES", false)

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

// MissPolicy maps the configured ON_MISS value onto a renderer policy.
func (c Config) MissPolicy() (render.MissPolicy, error) {
	switch c.OnMiss {
	case "placeholder", "":
		return render.MissPlaceholder, nil
	case "skip":
		return render.MissSkip, nil
	case "fail":
		return render.MissFail, nil
	default:
		return 0, fmt.Errorf("config: unknown ON_MISS value %q", c.OnMiss)
	}
}

// RenderOptions builds the renderer options from the configured policies.
func (c Config) RenderOptions() (render.Options, error) {
	onMiss, err := c.MissPolicy()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		OnMiss:                  onMiss,
		AllowDuplicateAddresses: c.AllowDuplicateAddresses,
	}, nil
}
