// Package interactive provides the interactive command-line interface
// for adbee.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/docmine17/adbee-go/pkg/pairing"
	"github.com/docmine17/adbee-go/pkg/service"
)

// Console handles interactive mode for adbee.
type Console struct {
	svc *service.AdbService
	rl  *readline.Instance
}

// New creates a new interactive console.
func New(svc *service.AdbService) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "adbee> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := &Console{
		svc: svc,
		rl:  rl,
	}

	// Show pairing progress between prompts
	svc.OnEvent(c.handleEvent)

	return c, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		cmd := strings.ToLower(strings.Fields(input)[0])

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "generate", "g":
			c.cmdGenerate(ctx)

		case "qr":
			c.cmdQR()

		case "status", "s":
			c.cmdStatus()

		case "devices", "d":
			c.cmdDevices()

		case "stop":
			c.svc.Stop()
			fmt.Fprintln(c.rl.Stdout(), "Session stopped")

		case "start":
			c.cmdStart(ctx)

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `Commands:
  generate, g   Generate fresh credentials and restart the session
  qr            Reprint the QR code for the current credentials
  status, s     Show service state and credentials
  devices, d    List endpoints connected this session
  start         Start a pairing session
  stop          Stop the pairing session
  help, ?       Show this help
  quit, q       Exit`)
}

// cmdGenerate rotates the credentials and restarts the session, the
// equivalent of scanning a stale code and hitting "regenerate".
func (c *Console) cmdGenerate(ctx context.Context) {
	creds, err := c.svc.GenerateCredentials()
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed to generate credentials: %v\n", err)
		return
	}

	if err := c.svc.Start(ctx); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed to start session: %v\n", err)
		return
	}

	c.printQR(creds)
}

func (c *Console) cmdQR() {
	creds := c.svc.Credentials()
	if creds == nil {
		fmt.Fprintln(c.rl.Stdout(), "No credentials generated yet (try 'generate')")
		return
	}
	c.printQR(creds)
}

func (c *Console) cmdStart(ctx context.Context) {
	if err := c.svc.Start(ctx); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed to start session: %v\n", err)
		return
	}
	fmt.Fprintln(c.rl.Stdout(), "Session started")
}

func (c *Console) cmdStatus() {
	out := c.rl.Stdout()
	fmt.Fprintf(out, "State: %s\n", c.svc.State())

	creds := c.svc.Credentials()
	if creds == nil {
		fmt.Fprintln(out, "Credentials: none")
		return
	}
	fmt.Fprintf(out, "Service name: %s\n", creds.ServiceName)
	fmt.Fprintf(out, "Pairing code: %s\n", creds.Code)
	fmt.Fprintf(out, "Session ID:   %s\n", creds.SessionID)
}

func (c *Console) cmdDevices() {
	endpoints := c.svc.ConnectedEndpoints()
	if len(endpoints) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No devices connected this session")
		return
	}
	for _, endpoint := range endpoints {
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", endpoint)
	}
}

func (c *Console) printQR(creds *pairing.Credentials) {
	qr, err := pairing.RenderTerminal(creds.Payload())
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed to render QR code: %v\n", err)
		return
	}
	out := c.rl.Stdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, qr)
	fmt.Fprintf(out, "Service name: %s\n", creds.ServiceName)
	fmt.Fprintf(out, "Pairing code: %s\n", creds.Code)
}

func (c *Console) handleEvent(event service.Event) {
	out := c.rl.Stdout()
	switch event.Type {
	case service.EventPaired:
		fmt.Fprintf(out, "Paired with device %s\n", event.Endpoint)
	case service.EventConnected:
		fmt.Fprintf(out, "Connected to %s\n", event.Endpoint)
	case service.EventConnectFailed:
		fmt.Fprintf(out, "Connecting to %s failed: %v\n", event.Endpoint, event.Err)
	}
}
