package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"vincit.fi/photo-frame/api/apitype"
)

const (
	defaultConfigFile = "photo-frame.toml"
	databaseFile      = "photo-frame.db"
	currentImageFile  = "current_image.png"
)

type Config struct {
	Display DisplayConfig `koanf:"display"`
	Photos  PhotosConfig  `koanf:"photos"`
	Image   ImageConfig   `koanf:"image_settings"`
	Storage StorageConfig `koanf:"storage"`
}

type DisplayConfig struct {
	Type          string `koanf:"type"`           // mock, cast, inky or a Waveshare epd*in* model
	Width         int    `koanf:"width"`
	Height        int    `koanf:"height"`
	Orientation   string `koanf:"orientation"`    // horizontal or vertical
	InvertedImage bool   `koanf:"inverted_image"` // panel mounted upside down
	Helper        string `koanf:"helper"`         // command invoked by hardware panel drivers
	CastDevice    string `koanf:"cast_device"`    // Chromecast friendly name, empty picks the first found
	HttpPort      int    `koanf:"http_port"`      // port the cast driver serves images on
}

type PhotosConfig struct {
	AlbumUrl        string `koanf:"album_url"`
	FitStrategy     string `koanf:"fit_strategy"`
	FitPreserve     string `koanf:"fit_preserve"`
	BackgroundColor string `koanf:"background_color"`
}

type ImageConfig struct {
	Brightness float64 `koanf:"brightness"`
	Contrast   float64 `koanf:"contrast"`
	Saturation float64 `koanf:"saturation"`
	Sharpness  float64 `koanf:"sharpness"`
}

type StorageConfig struct {
	DataDir string `koanf:"data_dir"`
}

// Load reads the device config. An explicit path must exist; otherwise
// the default locations are tried in order with the last one winning.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config '%s': %w", path, err)
		}
	} else {
		for _, candidate := range defaultConfigPaths() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := k.Load(file.Provider(candidate), toml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config '%s': %w", candidate, err)
			}
		}
	}

	cfg := &Config{
		Display: DisplayConfig{
			Type:        "mock",
			Width:       800,
			Height:      480,
			Orientation: string(apitype.OrientationHorizontal),
			HttpPort:    8080,
		},
		Photos: PhotosConfig{
			FitStrategy:     string(apitype.FitSmart),
			FitPreserve:     string(apitype.PreserveNone),
			BackgroundColor: "#FFFFFF",
		},
		Image: ImageConfig{
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
			Sharpness:  1.0,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)

	return cfg, nil
}

func defaultConfigPaths() []string {
	paths := []string{}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "photo-frame", "config.toml"))
	}
	paths = append(paths, defaultConfigFile)

	return paths
}

func defaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "photo-frame")
	}
	return "data"
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func (s *Config) Resolution() apitype.Size {
	return apitype.SizeOf(s.Display.Width, s.Display.Height)
}

func (s *Config) DisplayType() string {
	return strings.ToLower(strings.TrimSpace(s.Display.Type))
}

func (s *Config) Orientation() apitype.Orientation {
	return apitype.Orientation(strings.ToLower(strings.TrimSpace(s.Display.Orientation)))
}

func (s *Config) InvertedImage() bool {
	return s.Display.InvertedImage
}

func (s *Config) DisplayHelper() string {
	return s.Display.Helper
}

func (s *Config) CastDevice() string {
	return s.Display.CastDevice
}

func (s *Config) HttpPort() int {
	return s.Display.HttpPort
}

func (s *Config) AlbumUrl() string {
	return strings.TrimSpace(s.Photos.AlbumUrl)
}

func (s *Config) FitConfig() apitype.FitConfig {
	return apitype.FitConfigOf(s.Photos.FitStrategy, s.Photos.FitPreserve)
}

func (s *Config) BackgroundColor() string {
	return s.Photos.BackgroundColor
}

// EnhanceSettings returns the configured multipliers with zero and
// negative values treated as unset.
func (s *Config) EnhanceSettings() apitype.EnhanceSettings {
	return apitype.NewEnhanceSettings(
		multiplierOrDefault(s.Image.Brightness),
		multiplierOrDefault(s.Image.Contrast),
		multiplierOrDefault(s.Image.Saturation),
		multiplierOrDefault(s.Image.Sharpness),
	)
}

func multiplierOrDefault(value float64) float64 {
	if value <= 0 {
		return 1.0
	}
	return value
}

func (s *Config) DataDir() string {
	return s.Storage.DataDir
}

func (s *Config) DatabaseFile() string {
	return filepath.Join(s.Storage.DataDir, databaseFile)
}

func (s *Config) CurrentImagePath() string {
	return filepath.Join(s.Storage.DataDir, currentImageFile)
}
