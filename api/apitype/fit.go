package apitype

import (
	"strings"
)

type FitStrategy string

const (
	// FitDefault crops to fill the target, the unconditional fallback.
	FitDefault FitStrategy = "default"
	FitCover   FitStrategy = "cover"
	FitContain FitStrategy = "contain"
	FitStretch FitStrategy = "stretch"
	FitSmart   FitStrategy = "smart"
)

type PreserveMode string

const (
	PreserveNone   PreserveMode = "none"
	PreserveWidth  PreserveMode = "width"
	PreserveHeight PreserveMode = "height"
)

// FitConfig describes how a source image is reconciled with a fixed
// target canvas. Preserve takes precedence over Strategy when not none.
type FitConfig struct {
	Strategy FitStrategy
	Preserve PreserveMode
}

// FitConfigOf normalizes free-form strategy and preserve strings.
// Unrecognized values fall back to the default strategy and no preserve.
func FitConfigOf(strategy string, preserve string) FitConfig {
	return FitConfig{
		Strategy: toFitStrategy(strategy),
		Preserve: toPreserveMode(preserve),
	}
}

func DefaultFitConfig() FitConfig {
	return FitConfig{Strategy: FitDefault, Preserve: PreserveNone}
}

func toFitStrategy(value string) FitStrategy {
	switch FitStrategy(strings.ToLower(strings.TrimSpace(value))) {
	case FitCover:
		return FitCover
	case FitContain:
		return FitContain
	case FitStretch:
		return FitStretch
	case FitSmart:
		return FitSmart
	default:
		return FitDefault
	}
}

func toPreserveMode(value string) PreserveMode {
	switch PreserveMode(strings.ToLower(strings.TrimSpace(value))) {
	case PreserveWidth:
		return PreserveWidth
	case PreserveHeight:
		return PreserveHeight
	default:
		return PreserveNone
	}
}
