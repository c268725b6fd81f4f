// Command wifista-device runs a station-mode wireless client against the
// simulated radio driver.
//
// It wires the full stack together:
//   - CLI argument parsing with optional YAML configuration file
//   - station lifecycle client over the simulated driver
//   - link-event capture to a .wlog file
//   - persisted link statistics
//   - mDNS presence advertising while the link is up
//   - interactive shell for driving the link by hand
//
// Usage:
//
//	wifista-device [flags]
//
// Flags:
//
//	-ssid string        Network name (required unless set in config file)
//	-password string    Network credential
//	-config string      YAML configuration file path
//	-log-level string   Log level: debug, info, warn, error (default "error")
//	-capture string     Write link events to this .wlog file
//	-state string       Persist link statistics to this JSON file
//	-serial string      Device serial number (auto-generated if empty)
//	-model string       Device model name
//	-name string        mDNS instance name
//	-mdns               Advertise presence via mDNS while connected
//	-fail-assoc int     Fail the first N association attempts
//	-interactive        Run the interactive shell (default true)
//	-version            Print version and exit
//
// Examples:
//
//	# Connect to a network and drive the link interactively
//	wifista-device -ssid lab -password secret123
//
//	# Headless with capture and presence advertising
//	wifista-device -config /etc/wifista/device.yaml -interactive=false
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wifista-project/wifista-go/cmd/wifista-device/interactive"
	"github.com/wifista-project/wifista-go/pkg/discovery"
	"github.com/wifista-project/wifista-go/pkg/driver/sim"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
	"github.com/wifista-project/wifista-go/pkg/log"
	"github.com/wifista-project/wifista-go/pkg/persistence"
	"github.com/wifista-project/wifista-go/pkg/station"
	"github.com/wifista-project/wifista-go/pkg/version"
)

// Config holds the device configuration. YAML tags cover the fields a
// configuration file may set; flags override file values.
type Config struct {
	SSID      string `yaml:"ssid"`
	Password  string `yaml:"password"`
	LogLevel  string `yaml:"log_level"`
	Capture   string `yaml:"capture"`
	StateFile string `yaml:"state_file"`

	Serial       string `yaml:"serial"`
	Model        string `yaml:"model"`
	InstanceName string `yaml:"instance_name"`

	MDNS          bool   `yaml:"mdns"`
	MDNSInterface string `yaml:"mdns_interface"`

	FailAssociations int  `yaml:"fail_associations"`
	Interactive      bool `yaml:"-"`
}

var (
	config      Config
	configFile  string
	showVersion bool
)

func init() {
	flag.StringVar(&config.SSID, "ssid", "", "Network name")
	flag.StringVar(&config.Password, "password", "", "Network credential")
	flag.StringVar(&configFile, "config", "", "YAML configuration file path")
	flag.StringVar(&config.LogLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&config.Capture, "capture", "", "Write link events to this .wlog file")
	flag.StringVar(&config.StateFile, "state", "", "Persist link statistics to this JSON file")
	flag.StringVar(&config.Serial, "serial", "", "Device serial number (auto-generated if empty)")
	flag.StringVar(&config.Model, "model", "Reference Station", "Device model name")
	flag.StringVar(&config.InstanceName, "name", "", "mDNS instance name")
	flag.BoolVar(&config.MDNS, "mdns", false, "Advertise presence via mDNS while connected")
	flag.StringVar(&config.MDNSInterface, "mdns-if", "", "Network interface to advertise on (empty: all)")
	flag.IntVar(&config.FailAssociations, "fail-assoc", 0, "Fail the first N association attempts")
	flag.BoolVar(&config.Interactive, "interactive", true, "Run the interactive shell")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("wifista-device", version.Get())
		return
	}

	if configFile != "" {
		if err := loadConfigFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config file: %v\n", err)
			os.Exit(1)
		}
	}
	applyDefaults()

	if config.SSID == "" {
		fmt.Fprintln(os.Stderr, "An SSID is required (-ssid or config file)")
		os.Exit(1)
	}

	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, level); err != nil {
		logger.Error("device failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, level slog.Level) error {
	// Link-event capture
	capture, closeCapture, err := buildCapture(logger, level)
	if err != nil {
		return err
	}
	defer closeCapture()

	// Driver stack
	loop := eventloop.New()
	netif := sim.NewNetif()
	drv := sim.New(loop, sim.Config{
		FailAssociations: config.FailAssociations,
	}, sim.WithLogger(logger.With("component", "sim")))

	client := station.New(drv, netif, loop,
		station.WithLogger(logger.With("component", "station")),
		station.WithCapture(capture),
	)

	if err := client.Init(station.Config{
		SSID:     config.SSID,
		Password: config.Password,
	}); err != nil {
		return err
	}
	defer loop.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persisted link statistics
	if config.StateFile != "" {
		events, err := client.RegisterEventReceiver(8)
		if err != nil {
			return err
		}
		store := persistence.NewLinkStateStore(config.StateFile)
		go trackLinkState(ctx, logger, store, client, events)
	}

	// Presence advertising
	if config.MDNS {
		events, err := client.RegisterEventReceiver(4)
		if err != nil {
			return err
		}
		adv, err := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{
			Interface: config.MDNSInterface,
			TTL:       120 * time.Second,
		})
		if err != nil {
			return err
		}
		p := discovery.NewPresence(adv, discovery.PresenceInfo{
			InstanceName:  config.InstanceName,
			Serial:        config.Serial,
			Model:         config.Model,
			InterfaceName: sim.InterfaceName,
		}, events)
		p.AddressFunc = client.Address
		p.Logger = logger.With("component", "presence")
		go p.Run(ctx)
	}

	if err := client.Connect(); err != nil {
		return err
	}
	logger.Info("connecting", "ssid", config.SSID)

	defer func() {
		if err := client.Disconnect(); err != nil {
			logger.Error("disconnect failed", "error", err)
		}
	}()

	if config.Interactive {
		shell, err := interactive.New(client, drv)
		if err != nil {
			return err
		}
		shell.Run(ctx, cancel)
		return nil
	}

	// Headless: wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
	}
	return nil
}

func loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// Flags given on the command line take precedence over the file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["ssid"] && fileCfg.SSID != "" {
		config.SSID = fileCfg.SSID
	}
	if !set["password"] && fileCfg.Password != "" {
		config.Password = fileCfg.Password
	}
	if !set["log-level"] && fileCfg.LogLevel != "" {
		config.LogLevel = fileCfg.LogLevel
	}
	if !set["capture"] && fileCfg.Capture != "" {
		config.Capture = fileCfg.Capture
	}
	if !set["state"] && fileCfg.StateFile != "" {
		config.StateFile = fileCfg.StateFile
	}
	if !set["serial"] && fileCfg.Serial != "" {
		config.Serial = fileCfg.Serial
	}
	if !set["model"] && fileCfg.Model != "" {
		config.Model = fileCfg.Model
	}
	if !set["name"] && fileCfg.InstanceName != "" {
		config.InstanceName = fileCfg.InstanceName
	}
	if !set["mdns"] {
		config.MDNS = config.MDNS || fileCfg.MDNS
	}
	if !set["mdns-if"] && fileCfg.MDNSInterface != "" {
		config.MDNSInterface = fileCfg.MDNSInterface
	}
	if !set["fail-assoc"] && fileCfg.FailAssociations != 0 {
		config.FailAssociations = fileCfg.FailAssociations
	}
	return nil
}

func applyDefaults() {
	if config.Serial == "" {
		config.Serial = fmt.Sprintf("sta-%d", time.Now().Unix()%10000)
	}
	if config.InstanceName == "" {
		config.InstanceName = config.Serial
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

// buildCapture assembles the link-event capture chain: a .wlog file when
// configured, plus slog mirroring at debug level.
func buildCapture(logger *slog.Logger, level slog.Level) (log.Logger, func(), error) {
	var loggers []log.Logger

	closeCapture := func() {}
	if config.Capture != "" {
		fl, err := log.NewFileLogger(config.Capture)
		if err != nil {
			return nil, nil, fmt.Errorf("open capture file: %w", err)
		}
		loggers = append(loggers, fl)
		closeCapture = func() {
			if err := fl.Close(); err != nil {
				logger.Error("failed to close capture file", "error", err)
			}
		}
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(logger.With("component", "capture")))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeCapture, nil
	case 1:
		return loggers[0], closeCapture, nil
	default:
		return log.NewMultiLogger(loggers...), closeCapture, nil
	}
}

// trackLinkState persists link statistics on every connection-state
// notification.
func trackLinkState(ctx context.Context, logger *slog.Logger, store *persistence.LinkStateStore, client *station.Client, events <-chan station.Event) {
	state, err := store.Load()
	if err != nil {
		logger.Error("failed to load link state", "error", err)
	}
	if state == nil {
		state = &persistence.LinkState{Version: persistence.StateVersion}
	}
	state.InterfaceName = sim.InterfaceName

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev {
			case station.EventConnected:
				state.ConnectCount++
				state.LastConnectedAt = time.Now()
				if addr := client.Address(); addr.IsValid() {
					state.LastAddress = addr.String()
				}
			case station.EventDisconnected:
				state.DisconnectCount++
			}
			if err := store.Save(state); err != nil {
				logger.Error("failed to save link state", "error", err)
			}
		}
	}
}
