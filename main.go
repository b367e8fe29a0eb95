package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/backend"
	"vincit.fi/photo-frame/backend/frame"
	"vincit.fi/photo-frame/common"
	"vincit.fi/photo-frame/common/config"
	"vincit.fi/photo-frame/common/event"
	"vincit.fi/photo-frame/common/logger"
)

const eventBusQueueSize = 100

func main() {
	params := common.ParseParams()
	logger.Initialize(logger.StringToLogLevel(params.LogLevel()))

	conf, err := config.Load(params.ConfigFile())
	if err != nil {
		logger.Error.Fatal("Could not load configuration ", err)
	}

	stores := backend.InitializeStores(conf.DatabaseFile())
	defer stores.Close()

	seedAlbumUrl(conf, stores.SettingsStore)

	broker := event.InitBus(eventBusQueueSize)
	services := backend.InitializeServices(conf, stores, broker)
	defer services.Close()

	broker.Subscribe(api.PhotoChanged, func(command *api.PhotoChangedCommand) {
		logger.Info.Printf("Panel now shows photo '%s'", command.Id)
	})
	broker.Subscribe(api.RefreshCompleted, func(command *api.RefreshCompletedCommand) {
		if command.Skipped {
			logger.Info.Print("Refresh completed, panel already up to date")
		} else {
			logger.Info.Print("Refresh completed")
		}
	})
	broker.Subscribe(api.ShowError, func(command *api.ErrorCommand) {
		logger.Warn.Printf("Reported: %s", command.Message)
	})

	if params.Interval() <= 0 {
		if err := services.FrameService.Refresh(); err != nil {
			logger.Error.Fatal("Refresh failed ", err)
		}
		return
	}

	runOnInterval(services.FrameService, params.Interval())
}

// seedAlbumUrl pushes the configured album URL into the settings store.
// The rotation engine only ever reads the store, so the TOML value wins
// whenever it is present and different.
func seedAlbumUrl(conf *config.Config, settings api.SettingsStore) {
	configured := conf.AlbumUrl()
	if configured == "" {
		return
	}

	if stored, err := settings.Get(apitype.AlbumUrlSetting, ""); err != nil {
		logger.Error.Fatal("Could not read album URL ", err)
	} else if stored != configured {
		logger.Info.Print("Storing album URL from configuration")
		if err := settings.Set(apitype.AlbumUrlSetting, configured); err != nil {
			logger.Error.Fatal("Could not store album URL ", err)
		}
	}
}

func runOnInterval(service *frame.Service, interval time.Duration) {
	logger.Info.Printf("Refreshing every %s", interval)

	refresh := func() {
		if err := service.Refresh(); err != nil {
			logger.Error.Printf("Refresh failed: %s", err)
		}
	}
	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			refresh()
		case sig := <-signals:
			logger.Info.Printf("Got signal %s, shutting down", sig)
			return
		}
	}
}
