// ABOUTME: Command-line remote controller for a running deck
// ABOUTME: Connects over WebSocket and issues transport and cue commands
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Monodeck/monodeck-go/internal/discovery"
	"github.com/Monodeck/monodeck-go/internal/remote"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: monodeck-ctl [flags] <command> [args]

Commands:
  play                 start playback
  pause                stop playback in place
  seek <seconds>       jump to a time offset
  cue <slot>           jump to cue slot 1-4
  set-cue <slot>       store the current position in slot 1-4
  clear-cue <slot>     unset cue slot 1-4
  load <path>          load a track (path as seen by the deck)
  watch                stream deck state until interrupted

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	addr := flag.String("addr", "", "Deck address host:port (default: discover via mDNS)")
	timeout := flag.Duration("timeout", 5*time.Second, "Discovery and response timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	deckAddr := *addr
	if deckAddr == "" {
		var err error
		deckAddr, err = discoverDeck(*timeout)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
	}

	client := remote.NewClient(remote.ClientConfig{
		ServerAddr: deckAddr,
		ClientID:   uuid.New().String(),
		Name:       "monodeck-ctl",
	})

	if err := client.Connect(); err != nil {
		log.Fatalf("Failed to connect to %s: %v", deckAddr, err)
	}
	defer client.Close()

	if err := run(client, flag.Args(), *timeout); err != nil {
		log.Fatalf("%v", err)
	}
}

// discoverDeck browses mDNS and returns the first deck found
func discoverDeck(timeout time.Duration) (string, error) {
	log.Printf("Browsing for decks...")

	mgr := discovery.NewManager(discovery.Config{})
	defer mgr.Stop()

	if err := mgr.Browse(); err != nil {
		return "", err
	}

	select {
	case info := <-mgr.Decks():
		return fmt.Sprintf("%s:%d", info.Host, info.Port), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("no deck found after %v", timeout)
	}
}

// run executes one command against the connected deck
func run(client *remote.Client, args []string, timeout time.Duration) error {
	cmd := args[0]

	switch cmd {
	case "play":
		return confirm(client, client.Play(), timeout)
	case "pause":
		return confirm(client, client.Pause(), timeout)
	case "seek":
		seconds, err := argFloat(args, "seek <seconds>")
		if err != nil {
			return err
		}
		return confirm(client, client.SeekSeconds(seconds), timeout)
	case "cue":
		slot, err := argSlot(args, "cue <slot>")
		if err != nil {
			return err
		}
		return confirm(client, client.JumpToCue(slot), timeout)
	case "set-cue":
		slot, err := argSlot(args, "set-cue <slot>")
		if err != nil {
			return err
		}
		return confirm(client, client.SetCue(slot), timeout)
	case "clear-cue":
		slot, err := argSlot(args, "clear-cue <slot>")
		if err != nil {
			return err
		}
		return confirm(client, client.ClearCue(slot), timeout)
	case "load":
		if len(args) < 2 {
			return fmt.Errorf("usage: load <path>")
		}
		if err := client.Load(args[1]); err != nil {
			return err
		}
		return waitForLoad(client, timeout)
	case "watch":
		return watch(client)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// confirm waits briefly for a server/error after a fire-and-forget command
func confirm(client *remote.Client, sendErr error, timeout time.Duration) error {
	if sendErr != nil {
		return sendErr
	}

	select {
	case errMsg := <-client.Errors:
		return fmt.Errorf("deck rejected command: %s", errMsg.Message)
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// waitForLoad blocks until the deck reports the load outcome
func waitForLoad(client *remote.Client, timeout time.Duration) error {
	select {
	case load := <-client.Loads:
		if load.Error != "" {
			return fmt.Errorf("load failed: %s", load.Error)
		}
		fmt.Printf("Loaded %s (%.1fs)\n", load.Path, load.Duration)
		return nil
	case errMsg := <-client.Errors:
		return fmt.Errorf("deck rejected command: %s", errMsg.Message)
	case <-time.After(timeout):
		return fmt.Errorf("no load result after %v", timeout)
	}
}

// watch prints deck state pushes until the connection drops
func watch(client *remote.Client) error {
	for state := range client.States {
		icon := "■"
		if state.Playing {
			icon = "▶"
		}
		fmt.Printf("%s %7.1fs / %7.1fs  cues=%v  faults=%d\n",
			icon, state.PositionSeconds, state.TotalSeconds, state.Cues, state.Faults)
	}
	return nil
}

// argFloat parses args[1] as a float
func argFloat(args []string, usage string) (float64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", args[1], err)
	}
	return v, nil
}

// argSlot parses args[1] as a 1-based cue pad number
func argSlot(args []string, usage string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	pad, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("bad slot %q: %w", args[1], err)
	}
	return pad - 1, nil
}
