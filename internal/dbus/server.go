package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/glimt/internal/model"
)

const (
	// DBusInterface is the annotation interface name.
	DBusInterface = "io.github.jmylchreest.glimt"
	// DBusPath is the annotation object path.
	DBusPath = "/io/github/jmylchreest/glimt"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.glimt"
)

// AnnotateHandler starts a session for the given annotation and returns its
// request ID.
type AnnotateHandler func(a model.Annotation) (string, error)

// ScreensHandler returns the current screen layout.
type ScreensHandler func() ([]model.Screen, error)

// StatusHandler returns a snapshot of the daemon state.
type StatusHandler func() StatusInfo

// Server exposes annotation requests on the session bus.
type Server struct {
	conn   *dbus.Conn
	logger *slog.Logger

	annotateHandler AnnotateHandler
	screensHandler  ScreensHandler
	statusHandler   StatusHandler

	mu      sync.Mutex
	running bool
}

// NewServer creates a new Server.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger}
}

// SetAnnotateHandler sets the handler called for Highlight and Popup requests.
func (s *Server) SetAnnotateHandler(handler AnnotateHandler) {
	s.annotateHandler = handler
}

// SetScreensHandler sets the handler behind ListScreens.
func (s *Server) SetScreensHandler(handler ScreensHandler) {
	s.screensHandler = handler
}

// SetStatusHandler sets the handler behind Status.
func (s *Server) SetStatusHandler(handler StatusHandler) {
	s.statusHandler = handler
}

// Start connects to the session bus and exports the annotation service.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: annotationMethods(),
				Signals: annotationSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue|dbus.NameFlagReplaceExisting)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus annotation server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		_, err := s.conn.ReleaseName(DBusBusName)
		if err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus annotation server stopped")
	return nil
}

// Highlight starts a highlight session over the given desktop region.
// D-Bus method: Highlight(iiii) -> s
func (s *Server) Highlight(x, y, width, height int32) (string, *dbus.Error) {
	s.logger.Debug("Highlight called", "x", x, "y", y, "width", width, "height", height)

	if s.annotateHandler == nil {
		return "", dbus.MakeFailedError(fmt.Errorf("no annotation handler"))
	}
	id, err := s.annotateHandler(model.Highlight{
		Rect: model.Rect{X: int(x), Y: int(y), Width: int(width), Height: int(height)},
	})
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return id, nil
}

// Popup starts a popup session anchored to the given desktop region.
// D-Bus method: Popup(siiii) -> s
func (s *Server) Popup(text string, x, y, width, height int32) (string, *dbus.Error) {
	s.logger.Debug("Popup called", "text", text, "x", x, "y", y)

	if s.annotateHandler == nil {
		return "", dbus.MakeFailedError(fmt.Errorf("no annotation handler"))
	}
	id, err := s.annotateHandler(model.Popup{
		Text:   text,
		Anchor: model.Rect{X: int(x), Y: int(y), Width: int(width), Height: int(height)},
	})
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return id, nil
}

// ListScreens returns the screen layout annotations are placed on.
// D-Bus method: ListScreens() -> a(siiiib)
func (s *Server) ListScreens() ([]ScreenInfo, *dbus.Error) {
	s.logger.Debug("ListScreens called")

	if s.screensHandler == nil {
		return nil, dbus.MakeFailedError(fmt.Errorf("no screens handler"))
	}
	screens, err := s.screensHandler()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return FromScreens(screens), nil
}

// Status returns daemon state for health checks.
// D-Bus method: Status() -> (s s u t)
func (s *Server) Status() (string, string, uint32, uint64, *dbus.Error) {
	s.logger.Debug("Status called")

	if s.statusHandler == nil {
		return "", "", 0, 0, dbus.MakeFailedError(fmt.Errorf("no status handler"))
	}
	info := s.statusHandler()
	return info.Version, info.Uptime, info.Active, info.Served, nil
}

// annotationMethods returns the D-Bus method introspection data.
func annotationMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Highlight",
			Args: []introspect.Arg{
				{Name: "x", Type: "i", Direction: "in"},
				{Name: "y", Type: "i", Direction: "in"},
				{Name: "width", Type: "i", Direction: "in"},
				{Name: "height", Type: "i", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Popup",
			Args: []introspect.Arg{
				{Name: "text", Type: "s", Direction: "in"},
				{Name: "x", Type: "i", Direction: "in"},
				{Name: "y", Type: "i", Direction: "in"},
				{Name: "width", Type: "i", Direction: "in"},
				{Name: "height", Type: "i", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "ListScreens",
			Args: []introspect.Arg{
				{Name: "screens", Type: "a(siiiib)", Direction: "out"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "uptime", Type: "s", Direction: "out"},
				{Name: "active", Type: "u", Direction: "out"},
				{Name: "served", Type: "t", Direction: "out"},
			},
		},
	}
}

// annotationSignals returns the D-Bus signal introspection data.
func annotationSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "AnnotationDone",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "u"},
			},
		},
	}
}
