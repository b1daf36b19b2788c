// ABOUTME: Main deck application orchestration
// ABOUTME: Wires the engine, DSP chain, output backend, TUI, and remote control
package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Monodeck/monodeck-go/internal/remote"
	"github.com/Monodeck/monodeck-go/internal/ui"
	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/Monodeck/monodeck-go/pkg/audio/output"
	"github.com/Monodeck/monodeck-go/pkg/deck"
	"github.com/Monodeck/monodeck-go/pkg/dsp"
)

// Config holds deck application configuration
type Config struct {
	// TrackPath is an optional track to load at startup
	TrackPath string

	// SampleRate of the engine and output device (default: 48000)
	SampleRate int

	// BlockFrames per callback (default: 256)
	BlockFrames int

	// Backend selects the output device ("malgo" or "oto")
	Backend string

	// UseTUI enables the terminal interface
	UseTUI bool

	// EnableRemote starts the WebSocket control server
	EnableRemote bool

	// RemotePort is the control server port
	RemotePort int

	// EnableMDNS advertises the control server via mDNS
	EnableMDNS bool

	// Name identifies this deck to controllers
	Name string
}

// Player is the running deck application
type Player struct {
	config Config

	engine   *deck.Engine
	deck     *deck.Deck
	out      output.Output
	gain     *dsp.Gain
	isolator *dsp.Isolator
	remote   *remote.Server

	tuiProg *tea.Program
	control *ui.Control

	loadResults chan deck.LoadResult

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a deck application from config
func New(config Config) (*Player, error) {
	if config.SampleRate == 0 {
		config.SampleRate = audio.DefaultSampleRate
	}
	if config.BlockFrames == 0 {
		config.BlockFrames = deck.DefaultBlockFrames
	}
	if config.Backend == "" {
		config.Backend = "malgo"
	}
	if config.Name == "" {
		config.Name = "Monodeck"
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Player{
		config:      config,
		loadResults: make(chan deck.LoadResult, 4),
		ctx:         ctx,
		cancel:      cancel,
	}

	p.gain = dsp.NewGain(1.0)
	p.isolator = dsp.NewIsolator(config.SampleRate, audio.DefaultChannels, config.BlockFrames)
	chain := dsp.NewChain(p.gain, p.isolator, dsp.NewClip())

	p.engine = deck.NewEngine(deck.EngineConfig{
		SampleRate:  config.SampleRate,
		BlockFrames: config.BlockFrames,
		Chain:       chain,
	})

	p.deck = deck.New(deck.Config{
		Engine: p.engine,
		OnLoad: p.onLoad,
	})

	out, err := output.New(config.Backend)
	if err != nil {
		cancel()
		return nil, err
	}
	p.out = out

	if config.EnableRemote {
		srv, err := remote.NewServer(remote.Config{
			Port:       config.RemotePort,
			Name:       config.Name,
			Deck:       p.deck,
			EnableMDNS: config.EnableMDNS,
		})
		if err != nil {
			cancel()
			return nil, err
		}
		p.remote = srv
	}

	return p, nil
}

// Deck returns the deck facade for direct control
func (p *Player) Deck() *deck.Deck {
	return p.deck
}

// Gain returns the master gain stage
func (p *Player) Gain() *dsp.Gain {
	return p.gain
}

// Isolator returns the 3-band EQ stage
func (p *Player) Isolator() *dsp.Isolator {
	return p.isolator
}

// Start opens the output device and runs until Stop or TUI quit
func (p *Player) Start() error {
	if err := p.out.Open(p.config.SampleRate, audio.DefaultChannels, p.config.BlockFrames, p.engine.Render); err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}

	if p.remote != nil {
		go func() {
			if err := p.remote.Start(); err != nil {
				log.Printf("Remote server error: %v", err)
			}
		}()
	}

	if p.config.TrackPath != "" {
		log.Printf("Loading track: %s", p.config.TrackPath)
		p.deck.Load(p.config.TrackPath)
	}

	go p.handleLoadResults()

	if p.config.UseTUI {
		return p.runTUI()
	}

	<-p.ctx.Done()
	return nil
}

// runTUI runs the terminal interface until the user quits
func (p *Player) runTUI() error {
	p.control = ui.NewControl()

	tuiProg, err := ui.Run(p.control)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	p.tuiProg = tuiProg

	go p.handleControls()
	go p.pushStatus()

	if p.config.TrackPath != "" {
		p.tuiProg.Send(ui.StatusMsg{Loading: true})
	}

	_, err = p.tuiProg.Run()
	p.cancel()
	return err
}

// handleControls translates TUI key commands into deck calls
func (p *Player) handleControls() {
	for {
		select {
		case msg := <-p.control.Commands:
			if err := p.dispatch(msg); err != nil {
				log.Printf("Command error: %v", err)
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// dispatch executes one TUI command against the deck
func (p *Player) dispatch(msg ui.ControlMsg) error {
	switch msg.Cmd {
	case ui.CmdToggle:
		if p.deck.Snapshot().Playing {
			return p.deck.Pause()
		}
		return p.deck.Play()
	case ui.CmdSeekRel:
		pos := p.deck.Snapshot().PositionSeconds()
		return p.deck.SeekSeconds(pos + msg.Seconds)
	case ui.CmdSeekTo:
		return p.deck.SeekSeconds(msg.Seconds)
	case ui.CmdSetCue:
		return p.deck.SetCue(msg.Slot)
	case ui.CmdJumpCue:
		return p.deck.JumpToCue(msg.Slot)
	case ui.CmdClearCue:
		return p.deck.ClearCue(msg.Slot)
	case ui.CmdQuit:
		p.cancel()
	}
	return nil
}

// pushStatus feeds deck state to the TUI on a fixed period
func (p *Player) pushStatus() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := p.deck.Snapshot()

			cues := make([]int64, deck.NumCues)
			for i := range cues {
				cues[i] = snap.Cues[i]
			}

			p.tuiProg.Send(ui.StatusMsg{
				Playing:         snap.Playing,
				PositionSeconds: snap.PositionSeconds(),
				TotalSeconds:    snap.TotalSeconds(),
				HasTrack:        snap.TotalFrames > 0,
				SampleRate:      snap.SampleRate,
				Cues:            cues,
				Faults:          snap.Faults,
			})

		case <-p.ctx.Done():
			return
		}
	}
}

// onLoad fans a load result out to the app, TUI, and remote controllers
func (p *Player) onLoad(res deck.LoadResult) {
	select {
	case p.loadResults <- res:
	default:
	}

	if p.remote != nil {
		p.remote.NotifyLoad(res)
	}
}

// handleLoadResults logs load outcomes and updates the TUI
func (p *Player) handleLoadResults() {
	for {
		select {
		case res := <-p.loadResults:
			if res.Err != nil {
				log.Printf("Load failed: %s: %v", res.Path, res.Err)
				if p.tuiProg != nil {
					p.tuiProg.Send(ui.StatusMsg{Error: res.Err.Error()})
				}
				continue
			}

			log.Printf("Loaded %s (%.1fs, %d frames)", res.Path, res.Duration, res.Frames)
			if p.tuiProg != nil {
				p.tuiProg.Send(ui.StatusMsg{
					TrackName: filepath.Base(res.Path),
					HasTrack:  true,
				})
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Stop shuts the application down
func (p *Player) Stop() {
	p.cancel()

	if p.remote != nil {
		p.remote.Stop()
	}

	if p.out != nil {
		if err := p.out.Close(); err != nil {
			log.Printf("Output close error: %v", err)
		}
	}

	if p.tuiProg != nil {
		p.tuiProg.Quit()
	}
}
