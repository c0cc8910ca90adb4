// Package surface provides the presenter backends frames are shown on: an
// X11 override-redirect window for live display and a PNG frame sink for
// headless use. Backends implement overlay.Presenter.
package surface
