// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Defaults for keys that also have a command line flag.
const (
	DefaultThreshold  = 245
	DefaultFramesPath = "output/raw_net_color.txt"
	DefaultFormat     = "text"
)

const (
	AppName       = "cwclip"
	ConfigType    = "yaml"
	DefaultConfig = `# cwclip configuration

# Brightness classification
threshold: 245          # ON cutoff for the average changed-pixel colour (0-255)
hysteresis: 1           # Consecutive frames required to confirm an ON/OFF change (1 = off)

# Frame extraction (video -> frame record)
rgb_tolerance: 90       # Grey-level difference from the first frame that counts as changed (0-255)
                        # Raise it when ambient light drifts during the clip
frame_width: 320        # Frames are resized to this width before comparison
frame_height: 240       # Frames are resized to this height before comparison
frames_path: "output/raw_net_color.txt"  # Frame record written by extract, read by decode

# Duration clustering
on_classes: 2           # ON duration classes (dot, dash)
off_classes: 3          # OFF duration classes (intra-symbol, letter, word)
max_iterations: 100     # K-Means iteration cap
strict_gap_classes: false  # Fail instead of remapping when too few distinct gaps exist

# Output
format: "text"          # text, json or yaml
workers: 4              # Parallel decodes for the batch command
debounce_ms: 200        # Quiet period before watch re-decodes a changed frame record
debug: false            # Enable debug logging

# Extra Morse symbols, e.g. prosigns
custom_symbols: []
#  - symbol: ".-.-."
#    text: "+"
`
)

// Settings holds all application configuration
type Settings struct {
	// Brightness classification
	Threshold  int `mapstructure:"threshold"`
	Hysteresis int `mapstructure:"hysteresis"`

	// Frame extraction
	RGBTolerance int    `mapstructure:"rgb_tolerance"`
	FrameWidth   int    `mapstructure:"frame_width"`
	FrameHeight  int    `mapstructure:"frame_height"`
	FramesPath   string `mapstructure:"frames_path"`

	// Duration clustering
	OnClasses        int  `mapstructure:"on_classes"`
	OffClasses       int  `mapstructure:"off_classes"`
	MaxIterations    int  `mapstructure:"max_iterations"`
	StrictGapClasses bool `mapstructure:"strict_gap_classes"`

	// Output
	Format     string `mapstructure:"format"`
	Workers    int    `mapstructure:"workers"`
	DebounceMs int    `mapstructure:"debounce_ms"`
	Debug      bool   `mapstructure:"debug"`

	CustomSymbols []Symbol `mapstructure:"custom_symbols"`
}

// Symbol is one extra Morse table entry.
type Symbol struct {
	Symbol string `mapstructure:"symbol"`
	Text   string `mapstructure:"text"`
}

// SymbolMap returns CustomSymbols keyed by symbol. Later entries win.
func (s *Settings) SymbolMap() map[string]string {
	m := make(map[string]string, len(s.CustomSymbols))
	for _, cs := range s.CustomSymbols {
		m[cs.Symbol] = cs.Text
	}
	return m
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/cwclip/
func Init() error {
	SetDefaults()

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("threshold", DefaultThreshold)
	viper.SetDefault("hysteresis", 1)
	viper.SetDefault("rgb_tolerance", 90)
	viper.SetDefault("frame_width", 320)
	viper.SetDefault("frame_height", 240)
	viper.SetDefault("frames_path", DefaultFramesPath)
	viper.SetDefault("on_classes", 2)
	viper.SetDefault("off_classes", 3)
	viper.SetDefault("max_iterations", 100)
	viper.SetDefault("strict_gap_classes", false)
	viper.SetDefault("format", DefaultFormat)
	viper.SetDefault("workers", 4)
	viper.SetDefault("debounce_ms", 200)
	viper.SetDefault("debug", false)
	viper.SetDefault("custom_symbols", []Symbol{})
}

// Defaults returns the settings a fresh default config file produces.
func Defaults() Settings {
	return Settings{
		Threshold:     DefaultThreshold,
		Hysteresis:    1,
		RGBTolerance:  90,
		FrameWidth:    320,
		FrameHeight:   240,
		FramesPath:    DefaultFramesPath,
		OnClasses:     2,
		OffClasses:    3,
		MaxIterations: 100,
		Format:        DefaultFormat,
		Workers:       4,
		DebounceMs:    200,
	}
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Brightness classification
	if s.Threshold < 0 || s.Threshold > 255 {
		errs = append(errs, fmt.Errorf("threshold must be between 0 and 255, got %d", s.Threshold))
	}
	if s.Hysteresis < 1 || s.Hysteresis > 30 {
		errs = append(errs, fmt.Errorf("hysteresis must be between 1 and 30, got %d", s.Hysteresis))
	}

	// Frame extraction
	if s.RGBTolerance < 0 || s.RGBTolerance > 255 {
		errs = append(errs, fmt.Errorf("rgb_tolerance must be between 0 and 255, got %d", s.RGBTolerance))
	}
	if s.FrameWidth < 16 || s.FrameWidth > 4096 {
		errs = append(errs, fmt.Errorf("frame_width must be between 16 and 4096, got %d", s.FrameWidth))
	}
	if s.FrameHeight < 16 || s.FrameHeight > 4096 {
		errs = append(errs, fmt.Errorf("frame_height must be between 16 and 4096, got %d", s.FrameHeight))
	}
	if strings.TrimSpace(s.FramesPath) == "" {
		errs = append(errs, errors.New("frames_path must not be empty"))
	}

	// Duration clustering
	if s.OnClasses < 2 || s.OnClasses > 4 {
		errs = append(errs, fmt.Errorf("on_classes must be between 2 and 4, got %d", s.OnClasses))
	}
	if s.OffClasses < 3 || s.OffClasses > 5 {
		errs = append(errs, fmt.Errorf("off_classes must be between 3 and 5, got %d", s.OffClasses))
	}
	if s.MaxIterations < 1 || s.MaxIterations > 10000 {
		errs = append(errs, fmt.Errorf("max_iterations must be between 1 and 10000, got %d", s.MaxIterations))
	}

	// Output
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[s.Format] {
		errs = append(errs, fmt.Errorf("format must be one of text, json, yaml, got %q", s.Format))
	}
	if s.Workers < 1 || s.Workers > 64 {
		errs = append(errs, fmt.Errorf("workers must be between 1 and 64, got %d", s.Workers))
	}
	if s.DebounceMs < 0 || s.DebounceMs > 10000 {
		errs = append(errs, fmt.Errorf("debounce_ms must be between 0 and 10000, got %d", s.DebounceMs))
	}

	for _, cs := range s.CustomSymbols {
		if cs.Symbol == "" || strings.Trim(cs.Symbol, ".-") != "" {
			errs = append(errs, fmt.Errorf("custom_symbols symbol %q must contain only '.' and '-'", cs.Symbol))
		}
		if cs.Text == "" {
			errs = append(errs, fmt.Errorf("custom_symbols text for %q must not be empty", cs.Symbol))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
