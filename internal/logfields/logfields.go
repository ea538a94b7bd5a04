package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyKind      = "kind"
	KeyDirectory = "directory"
	KeyStage     = "stage"
	KeyPath      = "path"
	KeyTitle     = "title"
	KeyTag       = "tag"
	KeyCount     = "count"
	KeyBuildID   = "build_id"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Kind(k string) slog.Attr      { return slog.String(KeyKind, k) }
func Directory(d string) slog.Attr { return slog.String(KeyDirectory, d) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Title(t string) slog.Attr     { return slog.String(KeyTitle, t) }
func Tag(t string) slog.Attr       { return slog.String(KeyTag, t) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr  { return slog.String(KeyBuildID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
