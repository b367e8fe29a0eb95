package frame

import (
	"image/color"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/config"
	"vincit.fi/photo-frame/common/logger"
	"vincit.fi/photo-frame/common/util"
)

// Service runs one refresh cycle: pick the next photo, download it and
// hand it to the renderer. A photo identical to the one already on the
// panel skips the render, e-ink refreshes are slow and visible.
type Service struct {
	conf     *config.Config
	rotator  api.PhotoRotator
	loader   api.ImageLoader
	renderer api.Renderer
	settings api.SettingsStore
	sender   api.Sender
}

func NewFrameService(
	conf *config.Config,
	rotator api.PhotoRotator,
	loader api.ImageLoader,
	renderer api.Renderer,
	settings api.SettingsStore,
	sender api.Sender) *Service {
	return &Service{
		conf:     conf,
		rotator:  rotator,
		loader:   loader,
		renderer: renderer,
		settings: settings,
		sender:   sender,
	}
}

func (s *Service) Refresh() error {
	photo, err := s.rotator.NextPhoto()
	if err != nil {
		return err
	}
	logger.Info.Printf("Next photo is '%s'", photo.Id)

	img, err := s.loader.FetchAndFit(photo.Url, s.downloadTarget(), s.background())
	if err != nil {
		return err
	}

	hash := util.ImageHash(img)
	if previous, err := s.settings.Get(apitype.LastImageHashSetting, ""); err != nil {
		logger.Warn.Printf("Could not read last image hash: %s", err)
	} else if previous == hash {
		logger.Info.Printf("Photo '%s' is already on the panel, skipping render", photo.Id)
		s.sender.SendCommandToTopic(api.RefreshCompleted, &api.RefreshCompletedCommand{Skipped: true})
		return nil
	}

	if err := s.renderer.Render(img, s.conf.FitConfig(), s.conf.BackgroundColor()); err != nil {
		return err
	}

	if err := s.settings.Set(apitype.LastImageHashSetting, hash); err != nil {
		logger.Warn.Printf("Could not store image hash: %s", err)
	}

	s.sender.SendCommandToTopic(api.PhotoChanged, &api.PhotoChangedCommand{Id: photo.Id})
	s.sender.SendCommandToTopic(api.RefreshCompleted, &api.RefreshCompletedCommand{Skipped: false})
	return nil
}

// downloadTarget is the panel resolution, swapped when the panel is
// mounted vertically so the orchestrator's 90 degree rotation lands
// exactly on the native resolution.
func (s *Service) downloadTarget() apitype.Size {
	resolution := s.conf.Resolution()
	if s.conf.Orientation() == apitype.OrientationVertical {
		return resolution.Swapped()
	}
	return resolution
}

func (s *Service) background() color.Color {
	if parsed, err := util.ParseHexColor(s.conf.BackgroundColor()); err != nil {
		logger.Warn.Printf("Invalid background color '%s', using white", s.conf.BackgroundColor())
		return util.White
	} else {
		return parsed
	}
}
