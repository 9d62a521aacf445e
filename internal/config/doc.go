// Package config loads caretkit's settings: the auto-close pair table, the
// go-to-line chord, the terminal theme and the log level.
//
// Settings files may be TOML, YAML or JSON; the format follows the file
// extension. Keys absent from a file keep their defaults, except "pairs",
// which replaces the default table as a whole when present.
//
//	[pairs]
//	"(" = ")"
//	"[" = "]"
//
//	[goto_line]
//	chord = "Ctrl+G"
//	enabled = true
//
//	[theme]
//	error = "#e06c75"
//
//	[log]
//	level = "debug"
package config
