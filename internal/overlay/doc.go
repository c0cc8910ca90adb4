// Package overlay runs annotation sessions: the timed loop that fades an
// annotation in, holds it, fades it out and clears the surface. A session
// owns its presenter for the duration of the run and closes it on exit.
package overlay
