package di

import (
	"context"
	"time"

	"huddle/config"
	"huddle/internal/session"
)

// ProvideSessionStore builds the session store and starts its expiry
// janitor for the life of the process.
func ProvideSessionStore(conf *config.Config) *session.Store {
	store := session.NewStore(conf)
	store.StartJanitor(context.Background(), time.Duration(conf.Session.SweepSeconds)*time.Second)

	return store
}
