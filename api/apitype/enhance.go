package apitype

// EnhanceSettings are multiplicative image adjustments. 1.0 is identity
// for every field; values are applied in a fixed order by the pipeline.
type EnhanceSettings struct {
	brightness float64
	contrast   float64
	saturation float64
	sharpness  float64
}

func NewEnhanceSettings(brightness float64, contrast float64, saturation float64, sharpness float64) EnhanceSettings {
	return EnhanceSettings{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
		sharpness:  sharpness,
	}
}

func DefaultEnhanceSettings() EnhanceSettings {
	return NewEnhanceSettings(1.0, 1.0, 1.0, 1.0)
}

func (s *EnhanceSettings) Brightness() float64 {
	return s.brightness
}

func (s *EnhanceSettings) Contrast() float64 {
	return s.contrast
}

func (s *EnhanceSettings) Saturation() float64 {
	return s.saturation
}

func (s *EnhanceSettings) Sharpness() float64 {
	return s.sharpness
}

func (s *EnhanceSettings) IsIdentity() bool {
	return s.brightness == 1.0 && s.contrast == 1.0 && s.saturation == 1.0 && s.sharpness == 1.0
}
