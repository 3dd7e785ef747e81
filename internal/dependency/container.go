// Package dependency wires the core corviu client services using
// go.uber.org/dig.
package dependency

import (
	"go.uber.org/dig"

	"github.com/corviu/corviu-go/internal/api"
	"github.com/corviu/corviu-go/internal/bus"
	"github.com/corviu/corviu-go/internal/channel"
	"github.com/corviu/corviu-go/internal/client"
	"github.com/corviu/corviu-go/internal/config"
	"github.com/corviu/corviu-go/internal/view"
)

// Container holds the resolved client service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	api       *api.Client
	bus       *bus.EventBus
	refresher *view.Refresher
	manager   *channel.Manager
	client    *client.Client
}

func (c *Container) API() *api.Client          { return c.api }
func (c *Container) Bus() *bus.EventBus        { return c.bus }
func (c *Container) Refresher() *view.Refresher { return c.refresher }
func (c *Container) Manager() *channel.Manager { return c.manager }
func (c *Container) Client() *client.Client    { return c.client }

// New builds and wires all client services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newAPIClient); err != nil {
		return nil, err
	}
	if err := d.Provide(bus.New); err != nil {
		return nil, err
	}
	if err := d.Provide(newRefresher); err != nil {
		return nil, err
	}
	if err := d.Provide(newTransport); err != nil {
		return nil, err
	}
	if err := d.Provide(newManager); err != nil {
		return nil, err
	}
	if err := d.Provide(client.New); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		a *api.Client,
		b *bus.EventBus,
		r *view.Refresher,
		m *channel.Manager,
		c *client.Client,
	) {
		result = &Container{
			api:       a,
			bus:       b,
			refresher: r,
			manager:   m,
			client:    c,
		}
	})
	return result, err
}

func newAPIClient(cfg *config.Config) *api.Client {
	return api.New(cfg.Endpoint, cfg.Credential)
}

func newRefresher(a *api.Client) *view.Refresher {
	return view.NewRefresher(a)
}

func newTransport() channel.Transport {
	return channel.NewWebSocketTransport()
}

func newManager(cfg *config.Config, t channel.Transport, b *bus.EventBus, r *view.Refresher) *channel.Manager {
	return channel.New(t, b, r, cfg.Endpoint, cfg.ReconnectDelay())
}
