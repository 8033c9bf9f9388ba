package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the process liveness surface. It exposes no bot state
// beyond a running flag; Telegram is the real interface.
type Handler struct {
	version   string
	startedAt time.Time
}

func NewHandler(version string) *Handler {
	return &Handler{
		version:   version,
		startedAt: time.Now(),
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/status", h.Status)
	e.GET("/health", h.Health)
	e.GET("/ping", h.Ping)
}

func (h *Handler) uptime() int64 {
	return int64(time.Since(h.startedAt).Seconds())
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Status:    "online",
		Service:   "TarotBot",
		Version:   h.version,
		Uptime:    h.uptime(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Endpoints: EndpointsResponse{
			Status: "/status",
			Health: "/health",
			Ping:   "/ping",
		},
	})
}

func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{
		Status:        "healthy",
		BotRunning:    true,
		UptimeSeconds: h.uptime(),
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}
