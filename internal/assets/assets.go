package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
)

// FontTTF is the typeface numerals are drawn with.
var FontTTF = goregular.TTF

//go:embed styles/*.yaml
var stylesFS embed.FS

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
// It contains the preview page served at '/'.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}

// Preset returns the raw YAML of a bundled style.
func Preset(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	data, err := stylesFS.ReadFile(path.Join("styles", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown style preset %q", name)
	}
	return data, nil
}

// PresetNames lists the bundled styles, sorted.
func PresetNames() []string {
	entries, err := stylesFS.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
