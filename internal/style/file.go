package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
)

// Format is the syntax of a style document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported style file %q: want .yaml, .yml or .toml", path)
}

// ParseAttributes reads a flat document of attribute names to scalars.
// Nested tables and lists are reported as issues.
func ParseAttributes(data []byte, format Format) (Attributes, []Issue, error) {
	raw := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to parse style yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to parse style toml: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported style format %q", format)
	}

	attrs := Attributes{}
	var issues []Issue
	for name, v := range raw {
		s, ok := scalarString(v)
		if !ok {
			issues = append(issues, Issue{Attr: name, Value: fmt.Sprint(v), Reason: "not a scalar, ignored"})
			continue
		}
		attrs[name] = s
	}
	return attrs, issues, nil
}

// Parse decodes a style document.
func Parse(data []byte, format Format) (face.StyleConfig, []Issue, error) {
	attrs, issues, err := ParseAttributes(data, format)
	if err != nil {
		return face.DefaultStyle(), nil, err
	}
	s, more := Decode(attrs)
	return s, append(issues, more...), nil
}

// LoadFile reads a .yaml, .yml or .toml style file.
func LoadFile(path string) (face.StyleConfig, []Issue, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return face.DefaultStyle(), nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return face.DefaultStyle(), nil, fmt.Errorf("failed to read style file: %w", err)
	}
	return Parse(data, format)
}

// LoadPreset decodes one of the bundled styles.
func LoadPreset(name string) (face.StyleConfig, []Issue, error) {
	data, err := assets.Preset(name)
	if err != nil {
		return face.DefaultStyle(), nil, err
	}
	return Parse(data, FormatYAML)
}

// Load resolves ref as a preset name first, then as a file path. An empty
// ref yields the default style.
func Load(ref string) (face.StyleConfig, []Issue, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return face.DefaultStyle(), nil, nil
	}
	if _, err := os.Stat(ref); err == nil {
		return LoadFile(ref)
	} else if !errors.Is(err, os.ErrNotExist) {
		return face.DefaultStyle(), nil, fmt.Errorf("failed to stat style file: %w", err)
	}
	return LoadPreset(ref)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}
