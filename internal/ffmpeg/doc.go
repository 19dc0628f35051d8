// Package ffmpeg launches the external transcoder with a prepared argument
// vector and surfaces its progress reports and exit status to the caller.
// One process per job, awaited until completion or context cancellation.
package ffmpeg
