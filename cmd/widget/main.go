package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cleaning-intake/internal/logger"
	"cleaning-intake/internal/widget"
)

const widgetLongDesc string = `Chat with the intake relay from a terminal.

The window starts closed. Type /open to open it (a new conversation starts
with the greeting), then type messages. Each message is sent in the
background, so a second message can go out before the first reply arrives.

Commands:
  /open    open the chat window
  /close   close it (the conversation is kept)
  /toggle  open or close
  /quit    wait for pending replies and exit

Examples:
  widget
  widget --endpoint http://localhost:8080/api/chat --company "Blitzblank GmbH"`

const widgetShortDesc string = "Terminal chat widget for the cleaning intake relay"

type widgetCommander struct {
	endpoint string
	company  string
	logoURL  string
	maxTurns int
	noErrCtx bool
	debug    bool
}

func newWidgetCmd() *cobra.Command {
	cmder := &widgetCommander{}

	cmd := &cobra.Command{
		Use:   "widget",
		Short: widgetShortDesc,
		Long:  widgetLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cmder.endpoint, "endpoint", "e", widget.DefaultEndpoint, "Chat endpoint URL")
	cmd.Flags().StringVarP(&cmder.company, "company", "c", widget.DefaultCompanyName, "Company name shown in the header")
	cmd.Flags().StringVar(&cmder.logoURL, "logo", "", "Logo URL shown in the header")
	cmd.Flags().IntVar(&cmder.maxTurns, "max-turns", 0, "Send at most this many recent turns per request (0 = all)")
	cmd.Flags().BoolVar(&cmder.noErrCtx, "drop-error-turns", false, "Do not send local error turns back as context")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *widgetCommander) run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := logger.NewWithOutput(c.debug, zapcore.AddSync(os.Stderr))
	defer log.Sync()

	w := widget.New(widget.NewTerminalView(out),
		widget.WithEndpoint(c.endpoint),
		widget.WithCompanyName(c.company),
		widget.WithLogoURL(c.logoURL),
		widget.WithMaxTurns(c.maxTurns),
		widget.WithErrorTurnsInContext(!c.noErrCtx),
		widget.WithLogger(log),
	)

	var pending sync.WaitGroup
	defer pending.Wait()

	fmt.Fprintln(out, "Type /open to start, /quit to exit.")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "/open":
			w.Open()
		case "/close":
			w.Close()
		case "/toggle":
			w.Toggle()
		case "/quit":
			return nil
		default:
			if w.State() != widget.Open {
				fmt.Fprintln(out, "The chat window is closed. Type /open first.")
				continue
			}
			pending.Add(1)
			go func(text string) {
				defer pending.Done()
				if err := w.Send(ctx, text); err != nil {
					log.Debug("send skipped", zap.Error(err))
				}
			}(line)
		}
	}
	return scanner.Err()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newWidgetCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
