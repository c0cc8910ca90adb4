package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/glimt/internal/model"
)

// Client calls a running glimtd over the session bus.
type Client struct {
	obj dbus.BusObject
}

// NewClient connects to the session bus and checks that a daemon owns the
// glimt bus name, so callers get a clear error instead of a method timeout.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var owned bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, DBusBusName).Store(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to query bus name: %w", err)
	}
	if !owned {
		return nil, fmt.Errorf("glimtd is not running (nothing owns %s)", DBusBusName)
	}

	return &Client{obj: conn.Object(DBusBusName, DBusPath)}, nil
}

// Highlight asks the daemon to show a highlight and returns the request ID.
func (c *Client) Highlight(r model.Rect) (string, error) {
	var id string
	err := c.obj.Call(DBusInterface+".Highlight", 0,
		int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)).Store(&id)
	if err != nil {
		return "", fmt.Errorf("highlight request failed: %w", err)
	}
	return id, nil
}

// Popup asks the daemon to show a popup and returns the request ID.
func (c *Client) Popup(text string, anchor model.Rect) (string, error) {
	var id string
	err := c.obj.Call(DBusInterface+".Popup", 0, text,
		int32(anchor.X), int32(anchor.Y), int32(anchor.Width), int32(anchor.Height)).Store(&id)
	if err != nil {
		return "", fmt.Errorf("popup request failed: %w", err)
	}
	return id, nil
}

// ListScreens returns the daemon's view of the screen layout.
func (c *Client) ListScreens() ([]model.Screen, error) {
	var infos []ScreenInfo
	err := c.obj.Call(DBusInterface+".ListScreens", 0).Store(&infos)
	if err != nil {
		return nil, fmt.Errorf("list screens failed: %w", err)
	}
	return ToScreens(infos), nil
}

// Status returns the daemon state snapshot.
func (c *Client) Status() (StatusInfo, error) {
	var info StatusInfo
	err := c.obj.Call(DBusInterface+".Status", 0).Store(
		&info.Version, &info.Uptime, &info.Active, &info.Served)
	if err != nil {
		return StatusInfo{}, fmt.Errorf("status request failed: %w", err)
	}
	return info, nil
}
