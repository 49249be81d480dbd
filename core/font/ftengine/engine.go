package ftengine

import (
	"sync"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font"
)

// StandardResolution is the device resolution (dots per inch) used if
// none is configured.
const StandardResolution = 72

var engine struct {
	sync.Mutex
	initialized bool
	resolution  int
}

// Init initializes the engine. It reads the default resolution from the
// global configuration (key "ftfont.resolution") and loads the built-in
// default font. Calling Init more than once is harmless.
func Init() {
	engine.Lock()
	defer engine.Unlock()
	if engine.initialized {
		return
	}
	if engine.resolution == 0 {
		engine.resolution = configuredResolution()
	}
	font.FallbackFont()
	engine.initialized = true
	tracer().Infof("font engine initialized, default resolution %d dpi", engine.resolution)
}

// Quit de-initializes the engine. Existing faces stay usable; the next
// face creation will initialize the engine again.
func Quit() {
	engine.Lock()
	defer engine.Unlock()
	engine.initialized = false
	engine.resolution = 0
	tracer().Debugf("font engine shut down")
}

// WasInit returns true if the engine is initialized.
func WasInit() bool {
	engine.Lock()
	defer engine.Unlock()
	return engine.initialized
}

// DefaultResolution returns the resolution used for faces created without
// a resolution override.
func DefaultResolution() int {
	engine.Lock()
	defer engine.Unlock()
	if engine.resolution == 0 {
		return configuredResolution()
	}
	return engine.resolution
}

func configuredResolution() int {
	dpi := core.ConfigInt(core.ConfResolution, StandardResolution)
	if dpi <= 0 {
		tracer().Errorf("configured resolution %d is invalid, using %d", dpi, StandardResolution)
		dpi = StandardResolution
	}
	return dpi
}

// SetDefaultResolution sets the engine's default resolution. A value
// of 0 or less restores the standard resolution.
func SetDefaultResolution(dpi int) {
	if dpi <= 0 {
		dpi = StandardResolution
	}
	engine.Lock()
	defer engine.Unlock()
	engine.resolution = dpi
}

// DefaultFontName returns the file name of the engine's built-in font.
func DefaultFontName() string {
	return font.FallbackFontFile
}
