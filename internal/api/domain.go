package api

import (
	"promptcraft/internal/auth"
	"promptcraft/internal/catalog"
	"promptcraft/internal/config"
	"promptcraft/internal/sessions"
	"promptcraft/internal/synthesis"
	"promptcraft/internal/wizard"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Sessions  sessions.System
	Catalog   catalog.System
	Synthesis synthesis.System
	Wizard    wizard.System
	Auth      auth.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	sessionSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	catalogSystem := catalog.New(runtime.Logger)

	synthesisSystem := synthesis.New(
		sessionSystem,
		runtime.LLM,
		runtime.Logger,
	)

	wizardSystem := wizard.New(
		sessionSystem,
		synthesisSystem,
		catalogSystem,
		runtime.Logger,
	)

	authSystem := auth.New(
		&cfg.Auth,
		runtime.Database.Connection(),
		auth.NewIdentityContext(),
		runtime.Logger,
	)

	return &Domain{
		Sessions:  sessionSystem,
		Catalog:   catalogSystem,
		Synthesis: synthesisSystem,
		Wizard:    wizardSystem,
		Auth:      authSystem,
	}
}
