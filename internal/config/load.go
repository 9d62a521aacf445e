package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the file access the loader needs, so tests can load from
// memory (fstest.MapFS satisfies it).
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Format is a settings file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads, decodes and validates the settings file at path.
func Load(path string) (Config, error) {
	return LoadFS(OSFS{}, path)
}

// LoadFS is Load over fsys.
func LoadFS(fsys FileSystem, path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Decode(format, path, data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data on top of Default. source names the data in errors.
// The result is not validated.
func Decode(format Format, source string, data []byte) (Config, error) {
	cfg := Default()
	// A pairs table in the file replaces the defaults rather than merging.
	cfg.Pairs = nil

	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(source, data, &cfg)
	case FormatYAML:
		err = decodeYAML(source, data, &cfg)
	case FormatJSON:
		err = decodeJSON(source, data, &cfg)
	default:
		err = fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Config{}, err
	}

	if cfg.Pairs == nil {
		cfg.Pairs = Default().Pairs
	}
	return cfg, nil
}

// Encode renders cfg in format.
func Encode(format Format, cfg Config) ([]byte, error) {
	switch format {
	case FormatTOML:
		return EncodeTOML(cfg)
	case FormatYAML:
		return EncodeYAML(cfg)
	case FormatJSON:
		return EncodeJSON(cfg)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}
