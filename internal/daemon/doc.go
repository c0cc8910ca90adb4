// Package daemon provides the main orchestration for glimtd.
// It coordinates the D-Bus server, overlay sessions, audio player,
// and configuration hot-reload functionality.
package daemon
