// Package dbus implements the io.github.jmylchreest.glimt D-Bus interface.
// It provides the server glimtd exports on the session bus, with methods for
// Highlight, Popup, ListScreens and Status, plus the client the CLI uses to
// talk to a running daemon.
package dbus
