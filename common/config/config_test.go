package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"vincit.fi/photo-frame/api/apitype"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo-frame.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write config file: %s", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	a := assert.New(t)

	cfg, err := Load(writeConfigFile(t, ""))

	a.Nil(err)
	a.Equal("mock", cfg.DisplayType())
	a.Equal(apitype.SizeOf(800, 480), cfg.Resolution())
	a.Equal(apitype.OrientationHorizontal, cfg.Orientation())
	a.False(cfg.InvertedImage())
	a.Equal("", cfg.AlbumUrl())
	a.Equal(apitype.FitConfigOf("smart", "none"), cfg.FitConfig())
	a.Equal("#FFFFFF", cfg.BackgroundColor())
	a.Equal(apitype.DefaultEnhanceSettings(), cfg.EnhanceSettings())
	a.Equal(8080, cfg.HttpPort())
	a.NotEqual("", cfg.DataDir())
}

func TestLoad_FullFile(t *testing.T) {
	a := assert.New(t)

	cfg, err := Load(writeConfigFile(t, `
[display]
type = "EPD7in3f"
width = 1024
height = 768
orientation = "Vertical"
inverted_image = true
helper = "/usr/local/bin/epd-show"
cast_device = "Living Room TV"
http_port = 9000

[photos]
album_url = "https://www.icloud.com/sharedalbum/#B0aGabcDEfghIJ"
fit_strategy = "contain"
fit_preserve = "width"
background_color = "#202020"

[image_settings]
brightness = 1.2
contrast = 0.9
saturation = 1.1
sharpness = 1.5

[storage]
data_dir = "/var/lib/photo-frame"
`))

	a.Nil(err)
	a.Equal("epd7in3f", cfg.DisplayType())
	a.Equal(apitype.SizeOf(1024, 768), cfg.Resolution())
	a.Equal(apitype.OrientationVertical, cfg.Orientation())
	a.True(cfg.InvertedImage())
	a.Equal("/usr/local/bin/epd-show", cfg.DisplayHelper())
	a.Equal("Living Room TV", cfg.CastDevice())
	a.Equal(9000, cfg.HttpPort())
	a.Equal("https://www.icloud.com/sharedalbum/#B0aGabcDEfghIJ", cfg.AlbumUrl())
	a.Equal(apitype.FitConfigOf("contain", "width"), cfg.FitConfig())
	a.Equal("#202020", cfg.BackgroundColor())
	a.Equal(apitype.NewEnhanceSettings(1.2, 0.9, 1.1, 1.5), cfg.EnhanceSettings())
	a.Equal("/var/lib/photo-frame", cfg.DataDir())
	a.Equal(filepath.Join("/var/lib/photo-frame", "photo-frame.db"), cfg.DatabaseFile())
	a.Equal(filepath.Join("/var/lib/photo-frame", "current_image.png"), cfg.CurrentImagePath())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	a := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.toml"))

	a.NotNil(err)
	a.Nil(cfg)
}

func TestLoad_InvalidToml(t *testing.T) {
	a := assert.New(t)

	cfg, err := Load(writeConfigFile(t, "[display\ntype ="))

	a.NotNil(err)
	a.Nil(cfg)
}

func TestEnhanceSettings_ZeroTreatedAsUnset(t *testing.T) {
	a := assert.New(t)

	cfg, err := Load(writeConfigFile(t, `
[image_settings]
brightness = 0.0
contrast = -1.0
`))

	a.Nil(err)
	a.Equal(apitype.DefaultEnhanceSettings(), cfg.EnhanceSettings())
}
