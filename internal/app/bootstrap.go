package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kks-tracker/internal/config"
	"kks-tracker/internal/delivery/http/middleware"
	"kks-tracker/internal/delivery/http/routes"
	"kks-tracker/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App

	// WS is nil when WS_PORT is not configured.
	WS *http.Server
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	a := &App{Fiber: f}
	if addr, err := ListenAddr(c.Config.App.WSPort); err == nil {
		mux := http.NewServeMux()
		mux.Handle("/ws", ws.NewHandler(c.Hub, c.JWT, c.Logger))
		a.WS = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}
	return a
}

// Bootstrap builds the container, starts the websocket hub and returns a
// cleanup that stops the hub and releases every connection.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

// registerGlobalMiddleware orders access logging outside error rendering so
// logged statuses are final.
func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT).Middleware()
	routes.NewRegistry(c.Health, c.Handlers, authMw).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
