package core

import (
	"strconv"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
)

// Configuration keys used by the font packages.
const (
	ConfAppKey     = "app-key"           // application key, names the per-user config/cache folder
	ConfFontConfig = "fontconfig"        // absolute path of the fc-list binary
	ConfResolution = "ftfont.resolution" // default device resolution of the font engine
)

var configuration struct {
	sync.RWMutex
	conf schuko.Configuration
}

// Configure sets the configuration the font packages read from. If conf is
// nil, keys are read from the global configuration (package gconf).
// Configure returns a function which restores the previous configuration.
func Configure(conf schuko.Configuration) (restore func()) {
	configuration.Lock()
	defer configuration.Unlock()
	prev := configuration.conf
	configuration.conf = conf
	return func() {
		configuration.Lock()
		defer configuration.Unlock()
		configuration.conf = prev
	}
}

// ConfigString reads a key from the configuration. It returns ""
// if the key is unset or no configuration has been set up.
func ConfigString(key string) (value string) {
	configuration.RLock()
	conf := configuration.conf
	configuration.RUnlock()
	defer func() {
		if r := recover(); r != nil {
			value = ""
		}
	}()
	if conf != nil {
		return conf.GetString(key)
	}
	return gconf.GetString(key)
}

// ConfigInt reads an integer from the configuration. It returns
// dflt if the key is unset or not a valid integer.
func ConfigInt(key string, dflt int) int {
	s := ConfigString(key)
	if s == "" {
		return dflt
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return dflt
	}
	return n
}
