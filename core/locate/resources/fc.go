package resources

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font"
	"github.com/npillmayer/ftfont/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

const fcListFilename = "fontlist.txt"

func findFontConfigBinary() (string, error) {
	fcpath := core.ConfigString(core.ConfFontConfig)
	if fcpath == "" {
		var err error
		if fcpath, err = exec.LookPath("fc-list"); err != nil {
			tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
			return "", core.WrapError(err, core.EMISSING, "fontconfig not found")
		}
	}
	if !filepath.IsAbs(fcpath) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
	}
	return fcpath, nil
}

// fontConfigList returns the output of fc-list. If an application key is
// configured, the output is cached in the user's config directory and
// re-used unless update is set.
func fontConfigList(update bool) ([]byte, error) {
	var cached string
	if dir, err := ConfigDirPath(); err == nil {
		cached = filepath.Join(dir, fcListFilename)
		if !update {
			if list, err := os.ReadFile(cached); err == nil {
				tracer().Debugf("using cached fontconfig list %s", cached)
				return list, nil
			}
		}
	}
	fcpath, err := findFontConfigBinary()
	if err != nil {
		return nil, err
	}
	list, err := exec.Command(fcpath, ":", "file", "family", "style").Output()
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "fontconfig call failed: %s", fcpath)
	}
	if cached != "" {
		if err := os.WriteFile(cached, list, 0644); err != nil {
			err = core.WrapError(err, core.EINVALID,
				"fontconfig output file cannot be created: %s", cached)
			core.UserError(err)
		}
	}
	return list, nil
}

// parseFontConfigList reads lines of the form
//
//	/usr/share/fonts/DejaVuSans-Bold.ttf: DejaVu Sans,DejaVu Sans Bold:style=Bold,Fett
//
// and returns one descriptor per family name.
func parseFontConfigList(r io.Reader) ([]font.Descriptor, error) {
	var descs []font.Descriptor
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ":", 3)
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		switch strings.ToLower(filepath.Ext(fontpath)) {
		case ".ttf", ".otf":
		case ".ttc":
			ttc++
			continue
		default:
			continue
		}
		var style string
		if len(fields) == 3 {
			style = strings.ToLower(fields[2])
		}
		desc := font.Descriptor{Path: fontpath}
		if strings.Contains(style, "bold") || strings.Contains(style, "black") {
			desc.Weight = xfont.WeightBold
		}
		if strings.Contains(style, "italic") {
			desc.Style = xfont.StyleItalic
		} else if strings.Contains(style, "oblique") {
			desc.Style = xfont.StyleOblique
		}
		for _, family := range strings.Split(fields[1], ",") {
			family = strings.TrimPrefix(strings.TrimSpace(family), ".")
			if family == "" {
				continue
			}
			desc.Family = family
			descs = append(descs, desc)
		}
	}
	if err := scanner.Err(); err != nil {
		return descs, core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list")
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return descs, nil
}

// loadFontConfigFonts stores the fonts known to fontconfig in a registry.
// It returns false if fontconfig is not usable.
func loadFontConfigFonts(fr *fontregistry.Registry) bool {
	list, err := fontConfigList(false)
	if err != nil {
		tracer().Infof("no fontconfig font list: %v", err)
		return false
	}
	descs, err := parseFontConfigList(bytes.NewReader(list))
	if err != nil {
		core.UserError(err)
	}
	for _, desc := range descs {
		fr.StoreFont(desc)
	}
	tracer().Infof("loaded %d fonts from fontconfig list", len(descs))
	return len(descs) > 0
}
