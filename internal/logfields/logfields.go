package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyEntryID     = "entry_id"
	KeyNode        = "node"
	KeyField       = "field"
	KeyPublication = "publication"
	KeyAsset       = "asset"
	KeyFolder      = "folder"
	KeyWorker      = "worker"
	KeyPath        = "path"
	KeyCount       = "count"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func EntryID(id string) slog.Attr       { return slog.String(KeyEntryID, id) }
func Node(path string) slog.Attr        { return slog.String(KeyNode, path) }
func Field(tag string) slog.Attr        { return slog.String(KeyField, tag) }
func Publication(id string) slog.Attr   { return slog.String(KeyPublication, id) }
func Asset(src string) slog.Attr        { return slog.String(KeyAsset, src) }
func Folder(name string) slog.Attr      { return slog.String(KeyFolder, name) }
func Worker(name string) slog.Attr      { return slog.String(KeyWorker, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
