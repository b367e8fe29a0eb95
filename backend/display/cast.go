package display

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	cast "github.com/AndreasAbdi/gochromecast"
	"github.com/AndreasAbdi/gochromecast/configs"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/hashicorp/mdns"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/api/apitype"
	"vincit.fi/photo-frame/common/logger"
)

const (
	deviceSearchTimeout = time.Second * 30
	imageSendTimeout    = time.Second * 1
	appLaunchTimeout    = time.Second * 5
	appQuitTimeout      = time.Second * 5
	castService         = "_googlecast._tcp"
	castCanvasWidth     = 1920
	castCanvasHeight    = 1080
)

var ErrNoCastDevice = errors.New("no cast device found")

// CastDisplay shows photos on a Chromecast. The device is discovered
// over mdns on the first show and fetches each photo back from a small
// HTTP server guarded by a random secret.
type CastDisplay struct {
	secret     string
	port       int
	deviceName string
	sender     api.Sender

	device         *deviceEntry
	server         *http.Server
	currentImage   image.Image
	imageUpdateMux sync.Mutex

	api.Display
}

type deviceEntry struct {
	name         string
	serviceEntry *mdns.ServiceEntry
	device       *cast.Device
	localAddr    net.IP
}

// NewCastDisplay prepares a cast driver. deviceName may be empty, in
// which case the first discovered device is used.
func NewCastDisplay(port int, deviceName string, sender api.Sender) *CastDisplay {
	return &CastDisplay{
		secret:     newSecret(),
		port:       port,
		deviceName: deviceName,
		sender:     sender,
	}
}

func newSecret() string {
	if secret, err := uuid.NewRandom(); err != nil {
		logger.Error.Panic("Could not initialize secret for casting", err)
		return ""
	} else {
		return secret.String()
	}
}

func (s *CastDisplay) Show(img image.Image) error {
	if err := s.ensureConnected(); err != nil {
		return err
	}

	s.reserveImage()
	s.currentImage = img
	s.releaseImage()

	// Send a random string as part of the path so that the device
	// triggers an image change. The server decides which image to show,
	// so the outside world can't pick what is served
	imageUrl := fmt.Sprintf("http://%s:%d/%s/%s", s.device.localAddr, s.port, s.secret, newCacheBuster())
	logger.Debug.Printf("Casting image '%s'", imageUrl)
	if _, err := s.device.device.MediaController.Load(imageUrl, "image/jpeg", imageSendTimeout); err != nil {
		// The media controller regularly times out even though the
		// device then loads the image, so a slow load only warns
		logger.Warn.Print("Timed out while trying to cast image: ", err.Error())
	}
	return nil
}

func (s *CastDisplay) Close() {
	logger.Info.Println("Shutdown cast display")
	if s.device != nil && s.device.device != nil {
		s.device.device.QuitApplication(appQuitTimeout)
	}
	s.device = nil
	s.stopServer()
}

func newCacheBuster() string {
	if cacheBuster, err := uuid.NewRandom(); err != nil {
		return strconv.Itoa(rand.Int())
	} else {
		return cacheBuster.String()
	}
}

func (s *CastDisplay) ensureConnected() error {
	if s.device != nil {
		return nil
	}

	device, err := s.findDevice()
	if err != nil {
		return err
	}
	logger.Info.Printf("Using cast device '%s'", device.name)

	if d, err := cast.NewDevice(device.serviceEntry.Addr, device.serviceEntry.Port); err != nil {
		return fmt.Errorf("could not connect to cast device '%s': %w", device.name, err)
	} else {
		device.device = &d
	}

	appId := configs.MediaReceiverAppID
	device.device.ReceiverController.LaunchApplication(&appId, appLaunchTimeout, false)

	s.device = device
	s.startServer()
	return nil
}

func (s *CastDisplay) findDevice() (*deviceEntry, error) {
	devices := map[string]*deviceEntry{}
	entriesCh := make(chan *mdns.ServiceEntry, 4)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for entry := range entriesCh {
			if !strings.Contains(entry.Name, castService) {
				continue
			}
			deviceName := resolveDeviceName(entry)
			logger.Debug.Printf("Found cast device '%s': %v", deviceName, entry)

			// Resolve the local IP address as which the device sees this
			// host. This needs to be done before connecting, otherwise the
			// TCP connection can't be established
			localAddr, err := resolveLocalAddress(entry)
			if err != nil {
				s.sender.SendError("Could not resolve local address", err)
				continue
			}

			devices[deviceName] = &deviceEntry{
				name:         deviceName,
				serviceEntry: entry,
				localAddr:    localAddr,
			}
		}
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service: castService,
		Timeout: deviceSearchTimeout,
		Entries: entriesCh,
	})
	close(entriesCh)
	<-collected
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCastDevice, err)
	}

	if s.deviceName != "" {
		if device, ok := devices[s.deviceName]; ok {
			return device, nil
		}
		return nil, fmt.Errorf("%w: '%s'", ErrNoCastDevice, s.deviceName)
	}
	for _, device := range devices {
		return device, nil
	}
	return nil, ErrNoCastDevice
}

func resolveDeviceName(entry *mdns.ServiceEntry) string {
	var name string
	for _, field := range entry.InfoFields {
		if strings.HasPrefix(field, "fn=") {
			name = strings.ReplaceAll(field, "fn=", "")
		}
	}
	return name
}

func resolveLocalAddress(entry *mdns.ServiceEntry) (net.IP, error) {
	// Just some valid UDP port on the device to connect to
	const castTestPort = 32768
	var conn net.Conn
	var err error
	if entry.AddrV4 != nil {
		if conn, err = net.Dial("udp", fmt.Sprintf("%s:%d", entry.AddrV4, castTestPort)); err != nil {
			return nil, err
		}
	} else {
		if conn, err = net.Dial("udp", fmt.Sprintf("%s:%d", entry.AddrV6, castTestPort)); err != nil {
			return nil, err
		}
	}
	defer conn.Close()

	addr := conn.LocalAddr().(*net.UDPAddr).IP
	logger.Debug.Printf("Resolved local address to '%s'", addr.String())
	return addr, nil
}

func (s *CastDisplay) startServer() {
	if s.server != nil {
		logger.Warn.Println("Server already running")
		return
	}
	logger.Info.Printf("Starting HTTP server at port %d", s.port)

	mux := http.NewServeMux()
	mux.HandleFunc("/"+s.secret+"/", s.imageHandler)
	s.server = &http.Server{Addr: ":" + strconv.Itoa(s.port), Handler: mux}

	go func(server *http.Server) {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.sender.SendError("Error while initializing HTTP server", err)
		}
	}(s.server)
}

func (s *CastDisplay) stopServer() {
	if s.server == nil {
		logger.Debug.Println("No server running")
		return
	}
	logger.Info.Println("Shutting down HTTP server")
	if err := s.server.Shutdown(context.Background()); err != nil {
		s.sender.SendError("Error while shutting down HTTP server", err)
	}
	s.server = nil
}

func (s *CastDisplay) imageHandler(responseWriter http.ResponseWriter, r *http.Request) {
	s.reserveImage()
	img := s.currentImage
	s.releaseImage()

	if img == nil {
		responseWriter.WriteHeader(http.StatusNotFound)
		return
	}
	logger.Debug.Print("Sending current image to cast device")
	writeImageToResponse(responseWriter, castCanvas(img))
}

func writeImageToResponse(responseWriter http.ResponseWriter, img image.Image) {
	buffer := new(bytes.Buffer)
	if err := jpeg.Encode(buffer, img, nil); err != nil {
		logger.Error.Println("Failed to encode image: ", err)
		return
	}

	responseWriter.Header().Set("Content-Type", "image/jpeg")
	responseWriter.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	if _, err := responseWriter.Write(buffer.Bytes()); err != nil {
		logger.Error.Println("Failed to write image: ", err)
	}
}

// castCanvas scales the panel raster onto a TV-sized canvas with a
// blurred grayscale fill behind it so the photo doesn't float on black.
func castCanvas(srcImage image.Image) image.Image {
	background := imaging.Fill(srcImage, castCanvasWidth, castCanvasHeight, imaging.Center, imaging.Linear)
	background = imaging.Blur(background, 10)
	background = imaging.Grayscale(background)

	source := apitype.SizeOfImage(srcImage)
	width, height := apitype.ScaleToFit(source.GetWidth(), source.GetHeight(), castCanvasWidth, castCanvasHeight)
	scaled := imaging.Resize(srcImage, width, height, imaging.Linear)
	return imaging.PasteCenter(background, scaled)
}

func (s *CastDisplay) reserveImage() {
	s.imageUpdateMux.Lock()
}

func (s *CastDisplay) releaseImage() {
	s.imageUpdateMux.Unlock()
}
