// Package encoder maintains the registry of video encoders trimmux can
// target, detects which of them the local ffmpeg build exposes, and picks
// one according to the user's ordered preference list.
package encoder
