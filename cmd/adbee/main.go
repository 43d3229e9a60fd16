// Command adbee pairs Android devices over Wi-Fi without a USB cable.
//
// It publishes pairing credentials as a QR payload, watches the local
// network for the phone's wireless-debugging announcements and drives
// the adb tool to pair and connect automatically. Point the phone's
// "Pair device with QR code" scanner at the printed code and the
// device appears in `adb devices` a few seconds later.
//
// Usage:
//
//	adbee [flags]
//
// Flags:
//
//	-adb string           Path to the adb binary (default: resolve from PATH)
//	-iface string         Restrict mDNS browsing to one network interface
//	-config string        YAML configuration file path
//	-attempts int         Connect attempts per endpoint (default 3)
//	-reconnect            Reconnect endpoints whose announcement reappears
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-capture string       Write a binary session event log to this file
//	-qr-png string        Also write the QR code as a PNG to this file
//	-interactive          Start the interactive console
//
// Examples:
//
//	# Print the QR code and wait for a phone to scan it
//	adbee
//
//	# Debug a flaky network with verbose logs and a session capture
//	adbee -log-level debug -capture session.alog
//
//	# Interactive console with regenerate support
//	adbee -interactive
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docmine17/adbee-go/cmd/adbee/interactive"
	sessionlog "github.com/docmine17/adbee-go/pkg/log"
	"github.com/docmine17/adbee-go/pkg/pairing"
	"github.com/docmine17/adbee-go/pkg/service"
)

// Config holds the resolved command configuration.
type Config struct {
	AdbPath              string
	Interface            string
	ConfigFile           string
	ConnectAttempts      int
	ConnectBackoff       time.Duration
	OpportunisticBackoff time.Duration
	Reconnect            bool
	LogLevel             string
	CaptureFile          string
	QRPNGFile            string
	Interactive          bool
}

var config Config

func init() {
	flag.StringVar(&config.AdbPath, "adb", "", "Path to the adb binary (default: resolve from PATH)")
	flag.StringVar(&config.Interface, "iface", "", "Restrict mDNS browsing to one network interface")
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file path")
	flag.IntVar(&config.ConnectAttempts, "attempts", 3, "Connect attempts per endpoint")
	flag.DurationVar(&config.ConnectBackoff, "connect-backoff", 2*time.Second, "Delay between connect attempts")
	flag.DurationVar(&config.OpportunisticBackoff, "opportunistic-backoff", time.Second, "Delay between connect attempts right after pairing")
	flag.BoolVar(&config.Reconnect, "reconnect", false, "Reconnect endpoints whose announcement reappears")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.CaptureFile, "capture", "", "Write a binary session event log to this file")
	flag.StringVar(&config.QRPNGFile, "qr-png", "", "Also write the QR code as a PNG to this file")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive console")
}

func main() {
	flag.Parse()

	if config.ConfigFile != "" {
		if err := applyFileConfig(config.ConfigFile); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	setupLogging(config.LogLevel)

	log.Println("adbee - wireless ADB pairing")

	svcConfig := service.DefaultConfig()
	svcConfig.AdbPath = config.AdbPath
	svcConfig.Interface = config.Interface
	svcConfig.ConnectAttempts = config.ConnectAttempts
	svcConfig.ConnectBackoff = config.ConnectBackoff
	svcConfig.OpportunisticBackoff = config.OpportunisticBackoff
	svcConfig.ReconnectOnReappear = config.Reconnect

	if config.LogLevel == "debug" {
		svcConfig.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	var capture *sessionlog.FileLogger
	if config.CaptureFile != "" {
		var err error
		capture, err = sessionlog.NewFileLogger(config.CaptureFile)
		if err != nil {
			log.Fatalf("Failed to open capture file: %v", err)
		}
		defer capture.Close()
		svcConfig.SessionLogger = capture
		log.Printf("Capturing session events to %s", config.CaptureFile)
	}

	svc, err := service.NewAdbService(svcConfig)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	svc.OnEvent(handleEvent)

	creds, err := svc.GenerateCredentials()
	if err != nil {
		log.Fatalf("Failed to generate credentials: %v", err)
	}
	if err := printCredentials(creds); err != nil {
		log.Fatalf("Failed to render QR code: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startService(ctx, svc)

	if config.Interactive {
		console, err := interactive.New(svc)
		if err != nil {
			log.Fatalf("Failed to create console: %v", err)
		}
		// Redirect log output through readline to avoid interfering with input
		log.SetOutput(console.Stdout())
		go console.Run(ctx, cancel)
	}

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled (e.g., by interactive quit command)
	}

	log.Println("Shutting down...")
	svc.Stop()
	log.Println("Goodbye!")
}

// startService starts the pairing session. A missing adb binary or an
// unavailable discovery stack is a warning, not a fatal error: the QR
// code stays on screen and the process keeps running so the problem can
// be fixed and the session restarted.
func startService(ctx context.Context, svc *service.AdbService) {
	if err := svc.Start(ctx); err != nil {
		log.Printf("Warning: %v", err)
		log.Println("Automatic pairing is unavailable; the QR code above can still be scanned once the problem is resolved")
		return
	}
	log.Printf("Service started (state: %s)", svc.State())
	log.Println("Scan the QR code on the phone under Wireless debugging > Pair device with QR code")
}

// applyFileConfig overlays config file values under explicitly set flags.
func applyFileConfig(path string) error {
	fc, err := LoadFileConfig(path)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if fc.AdbPath != "" && !set["adb"] {
		config.AdbPath = fc.AdbPath
	}
	if fc.Interface != "" && !set["iface"] {
		config.Interface = fc.Interface
	}
	if fc.ConnectAttempts != 0 && !set["attempts"] {
		config.ConnectAttempts = fc.ConnectAttempts
	}
	if fc.ConnectBackoff != 0 && !set["connect-backoff"] {
		config.ConnectBackoff = fc.ConnectBackoff
	}
	if fc.OpportunisticBackoff != 0 && !set["opportunistic-backoff"] {
		config.OpportunisticBackoff = fc.OpportunisticBackoff
	}
	if fc.ReconnectOnReappear != nil && !set["reconnect"] {
		config.Reconnect = *fc.ReconnectOnReappear
	}
	if fc.LogLevel != "" && !set["log-level"] {
		config.LogLevel = fc.LogLevel
	}
	if fc.CaptureFile != "" && !set["capture"] {
		config.CaptureFile = fc.CaptureFile
	}
	if fc.QRPNGFile != "" && !set["qr-png"] {
		config.QRPNGFile = fc.QRPNGFile
	}
	return nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// printCredentials prints the pairing info and renders the QR code.
func printCredentials(creds *pairing.Credentials) error {
	payload := creds.Payload()

	qr, err := pairing.RenderTerminal(payload)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(qr)
	fmt.Printf("Service name: %s\n", creds.ServiceName)
	fmt.Printf("Pairing code: %s\n", creds.Code)
	fmt.Println()

	if config.QRPNGFile != "" {
		png, err := pairing.RenderPNG(payload, pairing.DefaultQRSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(config.QRPNGFile, png, 0644); err != nil {
			return err
		}
		log.Printf("QR code written to %s", config.QRPNGFile)
	}
	return nil
}

// handleEvent prints service events to the console.
func handleEvent(event service.Event) {
	switch event.Type {
	case service.EventPaired:
		log.Printf("Paired with device %s", event.Endpoint)
	case service.EventPairFailed:
		log.Printf("Pairing with %s failed: %v", event.Endpoint, event.Err)
	case service.EventConnected:
		log.Printf("Connected to %s - check `adb devices`", event.Endpoint)
	case service.EventConnectFailed:
		log.Printf("Connecting to %s failed: %v", event.Endpoint, event.Err)
	case service.EventStopped:
		log.Println("Pairing session ended")
	}
}
