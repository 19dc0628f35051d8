// Package probe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe against a media file and Parse decodes the raw
// payload into Stream descriptors: index, kind, codec, language, title,
// disposition flags, and duration. Descriptors are immutable snapshots; a
// fresh Result is produced per probed file.
//
// Matroska containers frequently omit the per-stream duration field and store
// it as a DURATION tag in HH:MM:SS.fractional form instead; both shapes are
// handled. Degenerate files with zero streams decode into a valid, empty
// Result rather than an error.
package probe
