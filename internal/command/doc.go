// Package command translates a resolved stream selection plus transcode
// configuration into the ordered ffmpeg argument vector and expected output
// path.
//
// Build is a pure translation step: deterministic for identical inputs,
// no I/O, no process spawning. Configuration mistakes (incompatible
// container, empty selection, missing encoder) fail with ErrConfiguration
// before any argument vector is returned. Container compatibility rules are
// data supplied through the Plan, with defaults in DefaultTable.
package command
