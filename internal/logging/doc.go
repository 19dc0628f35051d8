// Package logging builds the slog loggers used across trimmux.
//
// It supports a human-oriented console format and structured JSON, optional
// tee-ing into a log file, and exposes small Attr helpers so call sites stay
// terse. Obtain loggers through New so level parsing and writer setup remain
// consistent between the CLI commands.
package logging
