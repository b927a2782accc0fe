// Package widget is the customer-facing side of the intake chat. A Controller
// owns the local conversation, renders it through a View and relays every
// user message to the chat endpoint.
package widget

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cleaning-intake/internal/history"
	"cleaning-intake/internal/llm"
)

const (
	DefaultEndpoint    = "https://gebaeudereinigung-chatbot-demo.onrender.com/api/chat"
	DefaultCompanyName = "Gebäudereinigung"

	Greeting  = "Willkommen! Ich helfe Ihnen bei Ihrer Reinigungsanfrage. Um welche Art Reinigung geht es (z. B. Büroreinigung, Treppenhausreinigung, Fensterreinigung)?"
	Working   = "Einen Moment, ich prüfe Ihre Angaben …"
	ErrorText = "Leider ist ein Fehler aufgetreten. Bitte versuchen Sie es später erneut."

	Subtitle = "Gebäudereinigung • Anfrage-Chat"
)

var ErrClosed = errors.New("widget is closed")

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

type Controller struct {
	mu    sync.Mutex
	state State
	conv  *history.Conversation
	view  View

	endpoint            string
	company             string
	logoURL             string
	httpClient          *http.Client
	errorTurnsInContext bool
	maxTurns            int
	logger              *zap.Logger
}

type Option func(*Controller)

// WithEndpoint overrides the chat endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Controller) { c.endpoint = url }
}

func WithCompanyName(name string) Option {
	return func(c *Controller) {
		if name != "" {
			c.company = name
		}
	}
}

func WithLogoURL(url string) Option {
	return func(c *Controller) { c.logoURL = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Controller) { c.httpClient = hc }
}

// WithErrorTurnsInContext controls whether the local error turn is sent back
// as context on later requests. Default true.
func WithErrorTurnsInContext(include bool) Option {
	return func(c *Controller) { c.errorTurnsInContext = include }
}

// WithMaxTurns caps how many of the latest turns are sent per request. The
// transcript itself is never truncated. Zero means no cap.
func WithMaxTurns(n int) Option {
	return func(c *Controller) { c.maxTurns = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns a closed widget. A nil view renders nothing.
func New(view View, opts ...Option) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{
		state:               Closed,
		view:                view,
		endpoint:            DefaultEndpoint,
		company:             DefaultCompanyName,
		httpClient:          http.DefaultClient,
		errorTurnsInContext: true,
		logger:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.conv = history.NewConversation(c.maxTurns)
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle is the floating control: it opens a closed widget and closes an open
// one.
func (c *Controller) Toggle() {
	if c.State() == Open {
		c.Close()
		return
	}
	c.Open()
}

// Open shows the window. On an empty transcript the greeting is added
// locally; an existing conversation is kept as is.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Open {
		return
	}
	c.state = Open
	c.view.Show(Header{Company: c.company, LogoURL: c.logoURL, Subtitle: Subtitle})
	if c.conv.Len() == 0 {
		c.appendLocked(llm.RoleAssistant, Greeting, true)
	}
}

// Close hides the window and keeps the conversation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Closed {
		return
	}
	c.state = Closed
	c.view.Hide()
}

// Transcript returns every turn shown so far.
func (c *Controller) Transcript() []llm.Message {
	return c.conv.All()
}

// Send relays one user message. Blank input is ignored. Failures never
// surface as errors: they end up in the transcript as the error turn. Several
// Sends may run at once; each appends its own reply when it arrives.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if c.state != Open {
		c.mu.Unlock()
		return ErrClosed
	}
	if text == "" {
		c.mu.Unlock()
		return nil
	}
	c.appendLocked(llm.RoleUser, text, true)
	messages := c.conv.Context()
	done := c.view.ShowIndicator(Working)
	c.mu.Unlock()

	reply, err := c.requestReply(ctx, messages)

	c.mu.Lock()
	defer c.mu.Unlock()
	done()
	if err != nil {
		c.logger.Warn("chat request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		c.appendLocked(llm.RoleAssistant, ErrorText, c.errorTurnsInContext)
		return nil
	}
	c.appendLocked(llm.RoleAssistant, reply, true)
	return nil
}

func (c *Controller) appendLocked(role, content string, used bool) {
	c.conv.AppendWithUsed(role, content, used)
	c.view.Append(llm.Message{Role: role, Content: content})
}
