package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/almanac/internal/event"
)

// SessionMode distinguishes the two ways the editor opens.
type SessionMode string

const (
	// ModeNew is an add session: no prefilled id, submit performs an add.
	ModeNew SessionMode = "new"

	// ModeEdit is an edit session: prefilled from an existing event,
	// submit performs an update against its id.
	ModeEdit SessionMode = "edit"
)

// Session is the transient state of the add/edit form being open.
type Session struct {
	// Token identifies this session. Submits carry it back; a mismatch
	// means the submit came from a form that was already closed.
	Token string

	Mode SessionMode

	// EventID is the id being edited. Zero in ModeNew.
	EventID int64

	// Prefilled form fields.
	Title string
	Desc  string
	Date  time.Time
}

// Sentinel errors for editor transitions.
var (
	// ErrSessionOpen rejects opening a second editor while one is open.
	ErrSessionOpen = errors.New("an editing session is already open")

	// ErrStaleSubmit marks a submit whose token does not match the open
	// session. Callers treat it as an ignorable echo, not a failure.
	ErrStaleSubmit = errors.New("submit does not match the open editing session")
)

// OpenAdd transitions Closed -> Open(new), prefilled with the selected day.
func (c *Controller) OpenAdd() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return Session{}, ErrSessionOpen
	}
	c.session = &Session{
		Token: uuid.New().String(),
		Mode:  ModeNew,
		Date:  c.selected,
	}
	return *c.session, nil
}

// OpenEdit transitions Closed -> Open(editing), prefilled with the existing
// event. An unknown id leaves the machine Closed.
func (c *Controller) OpenEdit(id int64) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return Session{}, ErrSessionOpen
	}
	ev, ok := c.store.Get(id)
	if !ok {
		return Session{}, fmt.Errorf("open editor: no event with id %d", id)
	}
	c.session = &Session{
		Token:   uuid.New().String(),
		Mode:    ModeEdit,
		EventID: ev.ID,
		Title:   ev.Title,
		Desc:    ev.Desc,
		Date:    ev.Date,
	}
	return *c.session, nil
}

// Submit transitions Open -> Closed, performing the add or update the open
// session was for. The submitted form replaces the prefilled fields.
//
// A validation failure leaves the session open so the user can correct the
// form. A stale token returns ErrStaleSubmit and changes nothing.
func (c *Controller) Submit(form Session) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == nil || form.Token != session.Token {
		return ErrStaleSubmit
	}

	var err error
	switch session.Mode {
	case ModeEdit:
		err = c.store.Update(event.Event{
			ID:    session.EventID,
			Title: form.Title,
			Desc:  form.Desc,
			Date:  form.Date,
		})
	default:
		_, err = c.store.Add(event.NewEventInput{
			Title: form.Title,
			Desc:  form.Desc,
			Date:  form.Date,
		})
	}
	if event.IsValidationError(err) {
		return err
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	return err
}

// Cancel transitions Open -> Closed with no store mutation. Cancelling a
// closed editor is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// ActiveSession returns the open session, if any.
func (c *Controller) ActiveSession() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}
