// Package config resolves radialstack settings from defaults, an optional
// .radialstack.toml file, RADIALSTACK_* environment variables and command
// flags, in increasing order of precedence.
//
// Keys are the flag names, so the file
//
//	width = 640
//	layer-font-size = 18
//	palette = "brand.toml"
//
// is equivalent to passing --width 640 --layer-font-size 18 --palette
// brand.toml, or exporting RADIALSTACK_LAYER_FONT_SIZE=18.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/radialstack/pkg/pipeline"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
)

const (
	// FileName is the config file name without extension.
	FileName = ".radialstack"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "RADIALSTACK"

	DefaultAddr     = ":8080"
	DefaultCacheTTL = 24 * time.Hour
	DefaultMaxBody  = 8 << 20
)

// Config holds every resolved setting.
type Config struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Format  string  `mapstructure:"format"`
	Output  string  `mapstructure:"output"`
	Static  bool    `mapstructure:"static"`
	Scale   float64 `mapstructure:"scale"`
	Prefix  string  `mapstructure:"id-prefix"`
	Palette string  `mapstructure:"palette"`

	Segment string `mapstructure:"segment"`
	Layer   string `mapstructure:"layer"`
	Value   string `mapstructure:"value"`

	FontFamily     string  `mapstructure:"font-family"`
	LayerFontSize  float64 `mapstructure:"layer-font-size"`
	LegendFontSize float64 `mapstructure:"legend-font-size"`

	NoCache       bool          `mapstructure:"no-cache"`
	CacheDir      string        `mapstructure:"cache-dir"`
	CacheTTL      time.Duration `mapstructure:"cache-ttl"`
	CacheEntries  int           `mapstructure:"cache-entries"`
	RedisURL      string        `mapstructure:"redis-url"`
	Addr          string        `mapstructure:"addr"`
	CORSOrigins   []string      `mapstructure:"cors-origins"`
	MaxBodyBytes  int64         `mapstructure:"max-body-bytes"`
	ServerTimeout time.Duration `mapstructure:"server-timeout"`

	Verbose bool `mapstructure:"verbose"`
}

// New returns a viper instance with defaults, env binding and config
// search paths set up. file, when non-empty, replaces the search.
func New(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := styles.Defaults()
	v.SetDefault("width", pipeline.DefaultWidth)
	v.SetDefault("height", pipeline.DefaultHeight)
	v.SetDefault("format", pipeline.FormatSVG)
	v.SetDefault("output", "")
	v.SetDefault("static", false)
	v.SetDefault("scale", pipeline.DefaultScale)
	v.SetDefault("id-prefix", "")
	v.SetDefault("palette", "")
	v.SetDefault("segment", "")
	v.SetDefault("layer", "")
	v.SetDefault("value", "")
	v.SetDefault("font-family", d.FontFamily)
	v.SetDefault("layer-font-size", d.LayerFontSize)
	v.SetDefault("legend-font-size", d.LegendFontSize)
	v.SetDefault("no-cache", false)
	v.SetDefault("cache-dir", "")
	v.SetDefault("cache-ttl", DefaultCacheTTL)
	v.SetDefault("cache-entries", 0)
	v.SetDefault("redis-url", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("cors-origins", []string{"*"})
	v.SetDefault("max-body-bytes", DefaultMaxBody)
	v.SetDefault("server-timeout", 60*time.Second)
	v.SetDefault("verbose", false)
	return v
}

// Load reads the config file if present, binds flags and unmarshals the
// merged result. A missing config file is not an error unless it was named
// explicitly.
func Load(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Bindings returns the column bindings.
func (c *Config) Bindings() table.Bindings {
	return table.Bindings{Segment: c.Segment, Layer: c.Layer, Value: c.Value}
}

// Style returns the style options.
func (c *Config) Style() styles.Options {
	return styles.Options{
		FontFamily:     c.FontFamily,
		LayerFontSize:  c.LayerFontSize,
		LegendFontSize: c.LegendFontSize,
	}
}

// Formats splits the comma-separated format list.
func (c *Config) Formats() []string {
	var out []string
	for _, f := range strings.Split(c.Format, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return out
}

// PipelineOptions returns the pipeline options the config implies.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Width,
		Height:  c.Height,
		Formats: c.Formats(),
		Static:  c.Static,
		Style:   c.Style(),
		Scale:   c.Scale,
		Prefix:  c.Prefix,
	}
}
