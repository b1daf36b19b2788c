// ABOUTME: Entry point for the Monodeck single-deck player
// ABOUTME: Parses CLI flags and starts the deck application
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Monodeck/monodeck-go/internal/app"
	"github.com/Monodeck/monodeck-go/internal/remote"
	"github.com/Monodeck/monodeck-go/internal/version"
	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/Monodeck/monodeck-go/pkg/deck"
)

var (
	sampleRate = flag.Int("sample-rate", audio.DefaultSampleRate, "Engine sample rate in Hz")
	blockSize  = flag.Int("block-size", deck.DefaultBlockFrames, "Callback block size in frames")
	backend    = flag.String("backend", "malgo", "Audio output backend (malgo, oto)")
	name       = flag.String("name", "", "Deck friendly name (default: hostname-monodeck)")
	logFile    = flag.String("log-file", "monodeck.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	remotePort = flag.Int("remote-port", remote.DefaultPort, "WebSocket control server port")
	noRemote   = flag.Bool("no-remote", false, "Disable the WebSocket control server")
	mdnsAds    = flag.Bool("mdns", true, "Advertise the control server via mDNS")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file so the screen stays clean
		log.SetOutput(f)
	} else {
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	// Determine deck name
	deckName := *name
	if deckName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		deckName = fmt.Sprintf("%s-monodeck", hostname)
	}

	trackPath := flag.Arg(0)

	log.Printf("Starting %s %s: %s", version.Product, version.Version, deckName)

	player, err := app.New(app.Config{
		TrackPath:    trackPath,
		SampleRate:   *sampleRate,
		BlockFrames:  *blockSize,
		Backend:      *backend,
		UseTUI:       useTUI,
		EnableRemote: !*noRemote,
		RemotePort:   *remotePort,
		EnableMDNS:   *mdnsAds,
		Name:         deckName,
	})
	if err != nil {
		log.Fatalf("Failed to create deck: %v", err)
	}

	// OS signals stop the deck; in TUI mode 'q' ends Start directly
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutdown signal received")
		player.Stop()
	}()

	if err := player.Start(); err != nil {
		log.Fatalf("Deck error: %v", err)
	}

	player.Stop()
	log.Printf("Deck stopped")
}
