// Package server exposes the calendar over HTTP: a JSON API for the month
// grid and event CRUD, an ICS export endpoint, optional Basic Auth, and a
// cron-driven backup of the persisted collection.
package server
