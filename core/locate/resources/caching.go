package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/ftfont/core"
)

// ConfigDirPath checks and possibly creates a folder in the user's config
// directory. The base directory is taken from `os.UserConfigDir()`, plus
// an application specific key, taken as `app-key` from the global configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func ConfigDirPath(subfolders ...string) (string, error) {
	appkey := core.ConfigString(core.ConfAppKey)
	tracer().Debugf("config[%s] = %s", core.ConfAppKey, appkey)
	if appkey == "" {
		return "", core.Error(core.EMISSING, "application key is not set")
	}
	confdir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	confdir = filepath.Join(confdir, appkey, subs)
	if _, err = os.Stat(confdir); os.IsNotExist(err) {
		if err = os.MkdirAll(confdir, 0755); err != nil {
			return "", core.WrapError(err, core.EINVALID,
				"user configuration path cannot be created: %s", confdir)
		}
	}
	return confdir, nil
}
