package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/neon-arena/config"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/input"
	"github.com/lixenwraith/neon-arena/render"
	"github.com/lixenwraith/neon-arena/spectate"
	"github.com/lixenwraith/neon-arena/status"
)

// publishEvery throttles spectator frames relative to the tick rate
const publishEvery = 2

type options struct {
	configPath string
	envFile    string
	debug      bool
	seed       uint64
	lives      int
	humans     string
	difficulty string
	spectate   string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("neon-arena", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "neon-arena.toml", "settings file (TOML)")
	fs.StringVar(&o.envFile, "env", ".env", "dotenv file with NEON_ARENA_* overrides")
	fs.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	fs.Uint64Var(&o.seed, "seed", 0, "random seed, 0 keeps the configured seed")
	fs.IntVar(&o.lives, "lives", 0, "starting lives, 0 keeps the configured value")
	fs.StringVar(&o.humans, "humans", "", "comma separated human player ids 0-3, \"none\" for all AI")
	fs.StringVar(&o.difficulty, "difficulty", "", "AI difficulty: easy, medium, hard or 0..1")
	fs.StringVar(&o.spectate, "spectate", "", "spectator server address, e.g. :8080")
	err := fs.Parse(args)
	return o, err
}

// apply overlays explicitly set flags on loaded settings
func (o options) apply(s *config.Settings) error {
	if o.seed != 0 {
		s.Seed = o.seed
	}
	if o.lives != 0 {
		s.StartingLives = o.lives
	}
	if o.spectate != "" {
		s.SpectateAddr = o.spectate
	}
	if o.difficulty != "" {
		d, err := config.ParseDifficulty(o.difficulty)
		if err != nil {
			return err
		}
		s.AIDifficulty = d
	}
	if o.humans != "" {
		s.HumanPlayers = nil
		if o.humans != "none" {
			for _, part := range strings.Split(o.humans, ",") {
				id, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return fmt.Errorf("%w: humans %q", config.ErrInvalidConfig, o.humans)
				}
				s.HumanPlayers = append(s.HumanPlayers, id)
			}
		}
	}
	return s.Validate()
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()

	settings, err := config.Load(opts.configPath, opts.envFile)
	if err == nil {
		err = opts.apply(&settings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "neon-arena: %v\n", err)
		os.Exit(1)
	}

	if err := run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "neon-arena: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mNEON-ARENA CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	renderer := render.New(screen, engine.DefaultConfig().Arena)
	renderer.SetSettings(settings.Summary())

	match, err := engine.NewMatch(settings.EngineConfig(renderer.Sink()))
	if err != nil {
		return err
	}
	log.Printf("[MAIN] match %s ready, humans=%v seed=%d", match.ID(), settings.HumanPlayers, settings.Seed)

	metrics := status.NewRegistry()
	recorder := newMatchMetrics(metrics)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var spectator *spectate.Server
	if settings.SpectateAddr != "" {
		spectator = spectate.New(metrics)
		go func() {
			if err := spectator.Run(ctx, settings.SpectateAddr); err != nil {
				log.Printf("[MAIN] spectator server stopped: %v", err)
			}
		}()
	}

	events := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with the terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	handler := input.NewHandler()
	ticker := time.NewTicker(constant.TickInterval)
	defer ticker.Stop()

	var frames uint64
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			cmd := handler.HandleEvent(ev)
			if cmd == input.CommandResize {
				w, h := screen.Size()
				renderer.Resize(w, h)
			}
			if input.Dispatch(cmd, match) {
				log.Printf("[MAIN] quit after %d ticks, %d game overs", match.Ticks(), match.GameOvers())
				return nil
			}

		case <-ticker.C:
			start := time.Now()
			snap := match.Tick(handler.Next())
			renderer.Draw(snap)
			recorder.record(match, time.Since(start))

			frames++
			if spectator != nil && frames%publishEvery == 0 {
				if err := spectator.Publish(snap); err != nil {
					log.Printf("[MAIN] publish failed: %v", err)
				}
			}
		}
	}
}
