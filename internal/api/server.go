// Package api exposes check-in submission, the dashboard and analytics over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"pulse-insights-go/internal/dashboard"
	"pulse-insights-go/internal/filter"
	"pulse-insights-go/internal/logger"
	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/submission"
	"pulse-insights-go/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// SubmitRate is check-ins per second across all clients; 0 disables the limit.
	SubmitRate  float64
	SubmitBurst int
}

type Server struct {
	app     *fiber.App
	svc     *dashboard.Service
	log     *logger.Logger
	cfg     Config
	limiter *rate.Limiter
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, svc *dashboard.Service, log *logger.Logger) *Server {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 60 * time.Second
	}
	limit := rate.Inf
	if cfg.SubmitRate > 0 {
		limit = rate.Limit(cfg.SubmitRate)
	}
	burst := cfg.SubmitBurst
	if burst <= 0 {
		burst = 1
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          errorHandler,
	})

	srv := &Server{
		app:     app,
		svc:     svc,
		log:     log,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: logger.RequestIDKey,
	}))
	app.Use(srv.logRequests)
	app.Use(cors.New())

	srv.registerRoutes()
	return srv
}

// App is the underlying fiber application, used by tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen() error {
	s.log.WithField("addr", s.cfg.Addr).Info("pulse api listening")
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api/v1")
	api.Get("/entries", s.handleListEntries)
	api.Post("/entries", s.limitSubmissions, s.handleCreateEntry)
	api.Get("/dashboard", s.handleDashboard)
	api.Get("/analytics", s.handleAnalytics)
	api.Get("/analytics/export", s.handleExport)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = statusFor(err)
	}
	entry := s.log.WithRequest(c).WithFields(logrus.Fields{
		"status":     status,
		"latency_ms": time.Since(start).Milliseconds(),
	})
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.WithField("error", err).Error("request failed")
	case status >= fiber.StatusBadRequest:
		entry.Warn("request rejected")
	default:
		entry.Info("request completed")
	}
	return err
}

func (s *Server) limitSubmissions(c *fiber.Ctx) error {
	if !s.limiter.Allow() {
		return fiber.NewError(fiber.StatusTooManyRequests, "too many check-ins, try again shortly")
	}
	return c.Next()
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	opts := store.ListOptions{
		Sort:  c.Query("sort", store.SortNewestFirst),
		Limit: c.QueryInt("limit", store.DashboardLimit),
	}
	if err := opts.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	items, err := s.svc.Entries(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items)},
	})
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var form types.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	// a set submission_time is kept; a zero one is stamped by the service
	entry, err := s.svc.Submit(c.UserContext(), form)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": entry})
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	view, err := s.svc.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) handleAnalytics(c *fiber.Ctx) error {
	window, err := filter.ParseWindow(c.Query("window"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	view, err := s.svc.Analytics(c.UserContext(), window, c.Query("department", filter.AllDepartments))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	window, err := filter.ParseWindow(c.Query("window"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	department := c.Query("department", filter.AllDepartments)

	var buf bytes.Buffer
	if err := s.svc.ExportAnalytics(c.UserContext(), &buf, window, department); err != nil {
		return err
	}
	c.Attachment(fmt.Sprintf("pulse-analytics-%s-%s.xlsx", window, department))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func statusFor(err error) int {
	var (
		fe   *fiber.Error
		verr *submission.ValidationError
		serr *store.Error
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.As(err, &serr):
		return fiber.StatusBadGateway
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	var verr *submission.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	return c.Status(statusFor(err)).JSON(body)
}
