package views

import (
	"github.com/crewdeck/crewdeck/internal/application/enrich"
	"github.com/crewdeck/crewdeck/internal/infrastructure/logger"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// Deps bundles what every page needs: the resource client, the session
// store (read on every render, never cached), the reference resolver
// and the logger.
type Deps struct {
	Client   ports.ResourceClient
	Session  ports.SessionStore
	Resolver *enrich.Resolver
	Logger   *logger.Logger
}

// NewDeps wires the standard dependency set for the pages.
func NewDeps(client ports.ResourceClient, session ports.SessionStore, log *logger.Logger) Deps {
	return Deps{
		Client:   client,
		Session:  session,
		Resolver: enrich.NewResolver(client),
		Logger:   log.WithComponent("views"),
	}
}
