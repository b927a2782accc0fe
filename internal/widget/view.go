package widget

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"cleaning-intake/internal/llm"
)

type Header struct {
	Company  string
	LogoURL  string
	Subtitle string
}

// View renders the widget. Append is the only way content is added; the
// function returned by ShowIndicator removes that one indicator.
type View interface {
	Show(h Header)
	Hide()
	Append(turn llm.Message)
	ShowIndicator(text string) (remove func())
}

type nopView struct{}

func (nopView) Show(Header)                 {}
func (nopView) Hide()                       {}
func (nopView) Append(llm.Message)          {}
func (nopView) ShowIndicator(string) func() { return func() {} }

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1F6FB2")).
			Padding(0, 1)
	subtitleStyle  = lipgloss.NewStyle().Faint(true)
	botStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F6FB2"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	indicatorStyle = lipgloss.NewStyle().Italic(true).Faint(true)
)

// TerminalView writes the transcript to a terminal. An indicator can only be
// erased while it is still the last line written; otherwise it stays.
type TerminalView struct {
	mu   sync.Mutex
	out  io.Writer
	last int // id of the indicator on the last line, 0 if none
	next int
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

func (v *TerminalView) Show(h Header) {
	v.mu.Lock()
	defer v.mu.Unlock()
	logo := "🧹"
	if h.LogoURL != "" {
		logo = h.LogoURL
	}
	fmt.Fprintln(v.out, headerStyle.Render(logo+"  "+h.Company))
	fmt.Fprintln(v.out, subtitleStyle.Render(h.Subtitle))
	v.last = 0
}

func (v *TerminalView) Hide() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, subtitleStyle.Render("(geschlossen)"))
	v.last = 0
}

func (v *TerminalView) Append(turn llm.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if turn.Role == llm.RoleUser {
		fmt.Fprintln(v.out, userStyle.Render("Sie: ")+turn.Content)
	} else {
		fmt.Fprintln(v.out, botStyle.Render("Bot: ")+turn.Content)
	}
	v.last = 0
}

func (v *TerminalView) ShowIndicator(text string) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.next++
	id := v.next
	fmt.Fprintln(v.out, indicatorStyle.Render(text))
	v.last = id

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.last != id {
			return
		}
		// cursor up one line, clear it
		fmt.Fprint(v.out, "\x1b[1A\x1b[2K")
		v.last = 0
	}
}
