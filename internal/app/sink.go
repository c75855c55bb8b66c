package app

import (
	"errors"
	"log"
	"time"

	"github.com/ayusman/forcetrack/internal/server"
	"github.com/ayusman/forcetrack/internal/store"
	"github.com/ayusman/forcetrack/internal/tracker"
)

// Notification kinds.
const (
	KindBegin = "begin"
	KindMove  = "move"
)

func (a *App) onBegin(t *tracker.ForceTracker) {
	p := t.Location()
	log.Printf("force_begin(%d,%d)", p.X, p.Y)

	a.window.Move(p)
	a.journalBegin(t)
	a.deliver(KindBegin, t)
}

func (a *App) onMove(t *tracker.ForceTracker) {
	p := t.Location()
	log.Printf("force_move(%d,%d)", p.X, p.Y)

	a.window.Move(p)
	a.journalMove(t)
	a.deliver(KindMove, t)
}

func (a *App) journalBegin(t *tracker.ForceTracker) {
	if a.config.Journal == nil {
		return
	}
	sess, err := a.config.Journal.Sessions().Begin(JournalTracker, t.InitialLocation())
	if err != nil {
		log.Printf("journal begin: %v", err)
		return
	}
	a.sessionID = sess.ID
}

// journalMove records a move. A session whose begin was not delivered
// (tracking was disabled) is opened at its initial point first.
func (a *App) journalMove(t *tracker.ForceTracker) {
	if a.config.Journal == nil {
		return
	}
	if a.sessionID == "" {
		a.journalBegin(t)
		if a.sessionID == "" {
			return
		}
	}

	err := a.config.Journal.Sessions().Move(a.sessionID, t.Location())
	if errors.Is(err, store.ErrNotFound) {
		// Deleted through the API; start over.
		log.Printf("journal session %s is gone, opening a new one", a.sessionID)
		a.sessionID = ""
		a.journalBegin(t)
		if a.sessionID == "" {
			return
		}
		err = a.config.Journal.Sessions().Move(a.sessionID, t.Location())
	}
	if err != nil {
		log.Printf("journal move: %v", err)
	}
}

func (a *App) deliver(kind string, t *tracker.ForceTracker) {
	p := t.Location()
	if a.config.Events != nil {
		initial := t.InitialLocation()
		a.config.Events.Publish(server.Event{
			Kind:      kind,
			X:         p.X,
			Y:         p.Y,
			InitialX:  initial.X,
			InitialY:  initial.Y,
			Timestamp: time.Now().UnixMilli(),
		})
	}
	if a.config.OnEvent != nil {
		a.config.OnEvent(kind, p)
	}
}
