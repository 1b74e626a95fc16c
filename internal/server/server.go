package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/analyzer"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/githubapi"
)

// Analyzer is the pipeline behind the HTTP boundary.
type Analyzer interface {
	Analyze(ctx context.Context, username, jobDescription string) (*analyzer.Result, error)
}

type Server struct {
	app      *fiber.App
	pipeline Analyzer
	logger   *zap.Logger
}

type analyzeRequest struct {
	Username       string `json:"username"`
	JobDescription string `json:"jobDescription"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(pipeline Analyzer, logger *zap.Logger) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		pipeline: pipeline,
		logger:   logger,
	}

	s.app.Get("/healthz", s.health)
	s.app.Post("/api/analyze", s.analyze)

	return s
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (s *Server) analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	result, err := s.pipeline.Analyze(c.Context(), req.Username, req.JobDescription)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// writeError maps pipeline errors to the status taxonomy: invalid input
// is a 400, an unknown account a 404, anything else a generic 500.
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Username required"})
	case errors.Is(err, githubapi.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: "GitHub user not found"})
	default:
		s.logger.Error("analyze request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "Something went wrong"})
	}
}
