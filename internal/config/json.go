package config

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

func decodeJSON(source string, data []byte, cfg *Config) error {
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: source, Message: "invalid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return &ParseError{Path: source, Message: "top level must be an object"}
	}

	d := jsonDecoder{source: source}
	root.ForEach(func(k, v gjson.Result) bool {
		switch k.String() {
		case "pairs":
			cfg.Pairs = d.stringMap("pairs", v)
		case "goto_line":
			d.object("goto_line", v, map[string]func(gjson.Result){
				"chord":   func(r gjson.Result) { d.str("goto_line.chord", r, &cfg.GoToLine.Chord) },
				"enabled": func(r gjson.Result) { d.boolean("goto_line.enabled", r, &cfg.GoToLine.Enabled) },
			})
		case "theme":
			d.object("theme", v, map[string]func(gjson.Result){
				"text":       func(r gjson.Result) { d.str("theme.text", r, &cfg.Theme.Text) },
				"background": func(r gjson.Result) { d.str("theme.background", r, &cfg.Theme.Background) },
				"error":      func(r gjson.Result) { d.str("theme.error", r, &cfg.Theme.Error) },
			})
		case "log":
			d.object("log", v, map[string]func(gjson.Result){
				"level": func(r gjson.Result) { d.str("log.level", r, &cfg.Log.Level) },
				"file":  func(r gjson.Result) { d.str("log.file", r, &cfg.Log.File) },
			})
		default:
			d.fail("unknown setting %s", k.String())
		}
		return d.err == nil
	})
	return d.err
}

// jsonDecoder records the first error met while walking a document.
type jsonDecoder struct {
	source string
	err    error
}

func (d *jsonDecoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = &ParseError{Path: d.source, Message: fmt.Sprintf(format, args...)}
	}
}

func (d *jsonDecoder) object(path string, v gjson.Result, fields map[string]func(gjson.Result)) {
	if !v.IsObject() {
		d.fail("%s: expected object, got %s", path, v.Type)
		return
	}
	v.ForEach(func(k, val gjson.Result) bool {
		set, ok := fields[k.String()]
		if !ok {
			d.fail("unknown setting %s.%s", path, k.String())
			return false
		}
		set(val)
		return d.err == nil
	})
}

func (d *jsonDecoder) stringMap(path string, v gjson.Result) map[string]string {
	if !v.IsObject() {
		d.fail("%s: expected object, got %s", path, v.Type)
		return nil
	}
	m := make(map[string]string)
	v.ForEach(func(k, val gjson.Result) bool {
		if val.Type != gjson.String {
			d.fail("%s.%s: expected string, got %s", path, k.String(), val.Type)
			return false
		}
		m[k.String()] = val.String()
		return true
	})
	return m
}

func (d *jsonDecoder) str(path string, v gjson.Result, dst *string) {
	if v.Type != gjson.String {
		d.fail("%s: expected string, got %s", path, v.Type)
		return
	}
	*dst = v.String()
}

func (d *jsonDecoder) boolean(path string, v gjson.Result, dst *bool) {
	if !v.IsBool() {
		d.fail("%s: expected boolean, got %s", path, v.Type)
		return
	}
	*dst = v.Bool()
}

// EncodeJSON renders cfg as indented JSON.
func EncodeJSON(cfg Config) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	for _, f := range []struct {
		path  string
		value any
	}{
		{"pairs", cfg.Pairs},
		{"goto_line.chord", cfg.GoToLine.Chord},
		{"goto_line.enabled", cfg.GoToLine.Enabled},
		{"theme.text", cfg.Theme.Text},
		{"theme.background", cfg.Theme.Background},
		{"theme.error", cfg.Theme.Error},
		{"log.level", cfg.Log.Level},
		{"log.file", cfg.Log.File},
	} {
		if out, err = sjson.SetBytes(out, f.path, f.value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return pretty.Pretty(out), nil
}
