package backend

import (
	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/backend/database"
	"vincit.fi/photo-frame/backend/display"
	"vincit.fi/photo-frame/backend/frame"
	"vincit.fi/photo-frame/backend/icloud"
	"vincit.fi/photo-frame/backend/imageloader"
	"vincit.fi/photo-frame/backend/rotation"
	"vincit.fi/photo-frame/common/config"
	"vincit.fi/photo-frame/common/event"
	"vincit.fi/photo-frame/common/logger"
)

type Stores struct {
	PhotoStore    *database.PhotoStore
	SettingsStore *database.SettingsStore

	db *database.Database
}

func (s *Stores) Close() {
	s.db.Close()
}

// InitializeStores opens the pool database and brings its schema up to
// date. Failures here are fatal, nothing works without the pool.
func InitializeStores(databaseFile string) *Stores {
	logger.Debug.Printf("Initialize database...")
	db := database.NewDatabase()
	if err := db.InitializeForFile(databaseFile); err != nil {
		logger.Error.Fatal("Error opening database ", err)
	}
	db.Migrate()

	stores := &Stores{
		PhotoStore:    database.NewPhotoStore(db),
		SettingsStore: database.NewSettingsStore(db),
		db:            db,
	}
	logger.Debug.Printf("Stores and database initialized")
	return stores
}

type Services struct {
	AlbumClient  api.AlbumClient
	Rotator      api.PhotoRotator
	ImageLoader  api.ImageLoader
	Display      api.Display
	Renderer     api.Renderer
	FrameService *frame.Service
}

func (s *Services) Close() {
	s.Display.Close()
}

func InitializeServices(conf *config.Config, stores *Stores, broker *event.Broker) *Services {
	logger.Debug.Printf("Initialize services...")

	driver, err := display.NewDisplay(conf, broker)
	if err != nil {
		logger.Error.Fatal("Error initializing display ", err)
	}

	albumClient := icloud.NewClient()
	rotator := rotation.NewEngine(albumClient, stores.PhotoStore, stores.SettingsStore)
	loader := imageloader.NewImageLoader()
	renderer := display.NewManager(
		driver,
		conf.Resolution(),
		conf.Orientation(),
		conf.InvertedImage(),
		conf.EnhanceSettings(),
		conf.CurrentImagePath())

	services := &Services{
		AlbumClient:  albumClient,
		Rotator:      rotator,
		ImageLoader:  loader,
		Display:      driver,
		Renderer:     renderer,
		FrameService: frame.NewFrameService(conf, rotator, loader, renderer, stores.SettingsStore, broker),
	}
	logger.Debug.Printf("Services initialized")
	return services
}
