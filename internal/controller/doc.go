// Package controller orchestrates the day grid and the event store to
// answer "what should be shown for month M", and routes user intents to the
// right operation.
//
// The controller owns the ephemeral UI state the rendering layer consumes:
// the reference month, the selected day, and the add/edit session. None of
// it is persisted; the selected day defaults to "today" at process start.
//
// The add/edit workflow is an explicit state machine:
//
//	Closed --OpenAdd--------> Open(new, prefilled with selected day)
//	Closed --OpenEdit(id)---> Open(editing, prefilled with the event)
//	Open ----Submit---------> Closed (performs add or update)
//	Open ----Cancel---------> Closed (no store mutation)
//
// Only one session may be open at a time. Each session carries a token;
// a submit whose token does not match the open session is a stale echo from
// a closed form and is ignored.
package controller
