package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyComponent  = "component"
	KeyLibrary    = "library"
	KeyLocale     = "locale"
	KeyPath       = "path"
	KeyBatchID    = "batch_id"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyChannel    = "channel"
	KeyCategory   = "category"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Component(name string) slog.Attr  { return slog.String(KeyComponent, name) }
func Library(name string) slog.Attr    { return slog.String(KeyLibrary, name) }
func Locale(l string) slog.Attr        { return slog.String(KeyLocale, l) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func BatchID(id string) slog.Attr      { return slog.String(KeyBatchID, id) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Channel(name string) slog.Attr    { return slog.String(KeyChannel, name) }
func Category(id string) slog.Attr     { return slog.String(KeyCategory, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
