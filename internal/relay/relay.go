// Package relay serves the chat endpoint used by the intake widget. Each
// request is handled on its own: the instruction prompt is prepended to the
// client's history, the completion API is called once, and a reply carrying
// the internal summary marker triggers a background notification.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cleaning-intake/internal/api"
	"cleaning-intake/internal/config"
	"cleaning-intake/internal/llm"
	"cleaning-intake/internal/metrics"
	"cleaning-intake/internal/prompt"
	"cleaning-intake/internal/summary"
)

// UpstreamErrorMessage is the only failure text a client ever sees.
const UpstreamErrorMessage = "Fehler bei der KI-Antwort"

// Notifier receives the internal summary. Dispatch must not block.
type Notifier interface {
	Dispatch(body string)
	Wait()
}

type Server struct {
	config   *config.Config
	llm      llm.Client
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
	app      *fiber.App
}

func New(cfg *config.Config, client llm.Client, notifier Notifier, logger *zap.Logger, m *metrics.Metrics) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   cfg,
		llm:      client,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		app:      app,
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	app.Post(api.ChatPath, s.handleChat)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	// Everything else is the deployment root, served as-is.
	app.Static("/", cfg.StaticDir)

	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("starting relay server",
		zap.String("listen", s.config.ListenAddr()),
		zap.String("static_dir", s.config.StaticDir),
	)
	return s.app.Listen(s.config.ListenAddr())
}

func (s *Server) RunWithListener(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting requests, then waits for in-flight notifications
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)

	drained := make(chan struct{})
	go func() {
		s.notifier.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		s.logger.Warn("shutdown with notifications still in flight")
	}
	return err
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	history := s.decodeHistory(c.Body())
	messages := prompt.Augment(history)

	s.logger.Debug("received chat request", zap.Int("message_count", len(history)))

	start := time.Now()
	resp, err := s.llm.Generate(c.UserContext(), messages)
	s.metrics.RecordCompletion(time.Since(start))
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err))
		s.metrics.RecordChatRequest("upstream_error")
		return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse{Error: UpstreamErrorMessage})
	}

	s.logger.Debug("received completion",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.PromptTokens),
		zap.Int("completion_tokens", resp.CompletionTokens),
		zap.Duration("duration", time.Since(start)),
	)

	reply := summary.Parse(resp.Content)
	if reply.HasSummary {
		s.metrics.RecordSummary(reply.Complete())
		if missing := reply.Missing(); len(missing) > 0 {
			s.logger.Warn("internal summary is incomplete", zap.Strings("missing", missing))
		}
		s.notifier.Dispatch(reply.Summary)
	}

	out := resp.Content
	if s.config.StripInternalSummary {
		out = reply.CustomerText()
	}

	s.metrics.RecordChatRequest("ok")
	return c.JSON(api.ChatResponse{Reply: out})
}

// decodeHistory never fails. A body that is not an object, or a messages
// field that is absent, null or not an array, yields an empty history.
// Elements that are not {role, content} objects are dropped; the rest keep
// their order.
func (s *Server) decodeHistory(body []byte) []llm.Message {
	var req struct {
		Messages json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Debug("request body is not a JSON object, using empty history", zap.Error(err))
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(req.Messages, &items); err != nil {
		s.logger.Debug("messages is not an array, using empty history")
		return nil
	}

	history := make([]llm.Message, 0, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			s.logger.Warn("dropping null message", zap.Int("index", i))
			continue
		}
		var m llm.Message
		if err := json.Unmarshal(item, &m); err != nil {
			s.logger.Warn("dropping malformed message", zap.Int("index", i), zap.Error(err))
			continue
		}
		history = append(history, m)
	}
	return history
}
