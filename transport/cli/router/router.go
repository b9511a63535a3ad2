package router

import (
	"carrental/internal/handlers/auth"
	"carrental/internal/handlers/client"
	"carrental/internal/handlers/dashboard"
	"carrental/internal/handlers/payment"
	"carrental/internal/handlers/rental"
	"carrental/internal/handlers/user"
	"carrental/internal/handlers/vehicle"
	"carrental/transport/cli/middleware"
	"strings"

	"github.com/urfave/cli/v2"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Dashboard dashboard.Handler
	Vehicle   vehicle.Handler
	Client    client.Handler
	Rental    rental.Handler
	Payment   payment.Handler
	User      user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.AuthMiddleware
}

// SetupCommands mounts every screen on app. Each action runs traced and behind
// the role check for its full command path, e.g. "vehicles import".
func (r *Router) SetupCommands(app *cli.App) {
	var commands []*cli.Command

	commands = append(commands, r.DomainHandlers.Auth.Commands()...)
	commands = append(commands, r.DomainHandlers.Dashboard.Commands()...)
	commands = append(commands, r.DomainHandlers.Vehicle.Commands()...)
	commands = append(commands, r.DomainHandlers.Client.Commands()...)
	commands = append(commands, r.DomainHandlers.Rental.Commands()...)
	commands = append(commands, r.DomainHandlers.Payment.Commands()...)
	commands = append(commands, r.DomainHandlers.User.Commands()...)

	r.wrap(nil, commands)

	app.Commands = append(app.Commands, commands...)
}

func (r *Router) wrap(parents []string, commands []*cli.Command) {
	for _, command := range commands {
		path := append(append([]string{}, parents...), command.Name)

		if command.Action != nil {
			joined := strings.Join(path, " ")
			command.Action = r.AppMiddleware.Tracing(joined, r.AuthMiddleware.Authorize(joined, command.Action))
		}

		r.wrap(path, command.Subcommands)
	}
}

func New(
	domainHandlers DomainHandlers,
	appMiddleware middleware.AppMiddleware,
	authMiddleware middleware.AuthMiddleware,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
	}
}
