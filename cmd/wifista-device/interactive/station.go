// Package interactive provides the interactive command-line interface
// for driving a station link by hand.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/wifista-project/wifista-go/pkg/station"
	"github.com/wifista-project/wifista-go/pkg/version"
)

// Simulator is the part of the simulated driver the shell drives
// directly, beyond what the station client exposes.
type Simulator interface {
	// DropLink tears down an established link, reporting whether there
	// was one to tear down.
	DropLink() bool

	// ConnectCalls returns how many connection attempts the driver has
	// seen.
	ConnectCalls() int
}

// Shell handles interactive mode for wifista-device.
type Shell struct {
	client *station.Client
	sim    Simulator
	rl     *readline.Instance

	events <-chan station.Event
}

// New creates a new interactive shell over a station client.
func New(client *station.Client, sim Simulator) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "station> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		client: client,
		sim:    sim,
		rl:     rl,
	}

	// A dedicated receiver drives the live notification display. A few
	// slots of slack keep bursts from being dropped while a command runs.
	events, err := client.RegisterEventReceiver(8)
	if err != nil {
		rl.Close()
		return nil, err
	}
	s.events = events

	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user
// exits or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	go s.displayEvents(ctx)

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "connect", "c":
			s.cmdConnect()

		case "disconnect", "d":
			s.cmdDisconnect()

		case "status", "s":
			s.cmdStatus()

		case "drop":
			s.cmdDrop()

		case "version":
			fmt.Fprintln(s.rl.Stdout(), version.Get())

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Station Commands:
  Link:
    connect            - Start the connection process
    disconnect         - Stop the connection process
    status             - Show link state and address
    drop               - Tear down the established link (triggers reconnect)

  General:
    help               - Show this help
    version            - Show build version
    quit               - Exit`)
}

func (s *Shell) cmdConnect() {
	if err := s.client.Connect(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Connecting...")
}

func (s *Shell) cmdDisconnect() {
	if err := s.client.Disconnect(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Disconnected")
}

func (s *Shell) cmdStatus() {
	out := s.rl.Stdout()
	if s.client.IsConnected() {
		fmt.Fprintf(out, "Link:     up\n")
		fmt.Fprintf(out, "Address:  %s\n", s.client.Address())
	} else {
		fmt.Fprintf(out, "Link:     down\n")
	}
	fmt.Fprintf(out, "Attempts: %d\n", s.sim.ConnectCalls())
}

func (s *Shell) cmdDrop() {
	if !s.sim.DropLink() {
		fmt.Fprintln(s.rl.Stdout(), "No established link to drop")
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Link dropped")
}

// displayEvents prints connection-state notifications as they arrive.
func (s *Shell) displayEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			switch ev {
			case station.EventConnected:
				fmt.Fprintf(s.rl.Stdout(), "<< link up, address %s\n", s.client.Address())
			case station.EventDisconnected:
				fmt.Fprintln(s.rl.Stdout(), "<< link down")
			}
		}
	}
}
