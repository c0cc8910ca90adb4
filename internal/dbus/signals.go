package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// EmitAnnotationDone emits the AnnotationDone signal. It is emitted once per
// request when the session completes, is cancelled, or fails.
func (s *Server) EmitAnnotationDone(id string, reason DoneReason) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".AnnotationDone", id, uint32(reason))
	if err != nil {
		return fmt.Errorf("failed to emit AnnotationDone signal: %w", err)
	}

	s.logger.Debug("emitted AnnotationDone signal", "id", id, "reason", reason.String())
	return nil
}

// Connection returns the underlying D-Bus connection.
func (s *Server) Connection() *dbus.Conn {
	return s.conn
}
