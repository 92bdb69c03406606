package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/neon-arena/config"
	"github.com/lixenwraith/neon-arena/constant"
	"github.com/lixenwraith/neon-arena/engine"
	"github.com/lixenwraith/neon-arena/status"
)

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("Expected nil log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no log directory without debug")
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(io.Discard)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected log file with debug")
	}
	defer f.Close()

	out := log.Writer()
	if out == os.Stdout || out == os.Stderr {
		t.Error("Expected logs kept off the terminal")
	}

	log.Println("match started")
	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log content")
	}
}

func TestSetupLoggingRotates(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(io.Discard)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected current and rotated logs, got %d entries", len(entries))
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected fresh log file, got %d bytes", info.Size())
	}
}

func TestFlagsOverlaySettings(t *testing.T) {
	opts, err := parseFlags([]string{"-seed", "99", "-lives", "5", "-humans", "1, 3", "-difficulty", "hard", "-spectate", ":9000"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	s := config.Default()
	if err := opts.apply(&s); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if s.Seed != 99 || s.StartingLives != 5 || s.SpectateAddr != ":9000" {
		t.Errorf("Expected flag values, got %+v", s)
	}
	if len(s.HumanPlayers) != 2 || s.HumanPlayers[0] != 1 || s.HumanPlayers[1] != 3 {
		t.Errorf("Expected humans [1 3], got %v", s.HumanPlayers)
	}
	if s.AIDifficulty != constant.DifficultyHard {
		t.Errorf("Expected hard difficulty %f, got %f", constant.DifficultyHard, s.AIDifficulty)
	}
}

func TestFlagsUnsetKeepSettings(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	s := config.Default()
	s.Seed = 12
	if err := opts.apply(&s); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if s.Seed != 12 || len(s.HumanPlayers) != 1 {
		t.Errorf("Expected settings untouched, got %+v", s)
	}
}

func TestFlagsAllAI(t *testing.T) {
	opts, _ := parseFlags([]string{"-humans", "none"})
	s := config.Default()
	if err := opts.apply(&s); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(s.HumanPlayers) != 0 {
		t.Errorf("Expected no humans, got %v", s.HumanPlayers)
	}
}

func TestFlagsInvalid(t *testing.T) {
	tests := [][]string{
		{"-humans", "0,x"},
		{"-humans", "0,7"},
		{"-lives", "-2"},
		{"-difficulty", "impossible"},
	}
	for _, args := range tests {
		opts, err := parseFlags(args)
		if err != nil {
			t.Fatalf("parseFlags(%v) failed: %v", args, err)
		}
		s := config.Default()
		if err := opts.apply(&s); !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig for %v, got %v", args, err)
		}
	}
}

func TestMatchMetricsRecord(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Humans = [4]bool{}
	m, err := engine.NewMatch(cfg)
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		m.Tick(engine.Input{})
	}

	reg := status.NewRegistry()
	newMatchMetrics(reg).record(m, 1500*time.Microsecond)

	out := reg.Export()
	if out["match.ticks"] != int64(5) {
		t.Errorf("Expected 5 ticks, got %v", out["match.ticks"])
	}
	if out["match.mode"] != "playing" || out["match.id"] != m.ID() {
		t.Errorf("Expected mode and id, got %v %v", out["match.mode"], out["match.id"])
	}
	if out["match.alive"] != int64(4) || out["player.3.lives"] != int64(cfg.StartingLives) {
		t.Errorf("Expected full lives, got %v", out)
	}
	if out["frame.ms"] != 1.5 {
		t.Errorf("Expected 1.5ms frame, got %v", out["frame.ms"])
	}
}
