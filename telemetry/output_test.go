package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/formica/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All methods must be safe on the nil manager.
	if err := om.WriteDaily([]DailyRecord{{Day: 1}}); err != nil {
		t.Errorf("nil WriteDaily returned %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("nil WriteConfig returned %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestWriteDailyHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	day1 := []DailyRecord{
		{Day: 1, Colony: "blue", Season: "Spring", Food: 3, Population: 50},
		{Day: 1, Colony: "red", Season: "Spring", Food: 1, Population: 48},
	}
	day2 := []DailyRecord{
		{Day: 2, Colony: "blue", Season: "Spring", Food: 5, Population: 51},
		{Day: 2, Colony: "red", Season: "Spring", Food: 2, Population: 49},
	}

	if err := om.WriteDaily(day1); err != nil {
		t.Fatalf("WriteDaily day 1: %v", err)
	}
	if err := om.WriteDaily(day2); err != nil {
		t.Fatalf("WriteDaily day 2: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "daily.csv"))
	if err != nil {
		t.Fatalf("reading daily.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "day,colony,season") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "day,colony") != 1 {
		t.Error("header written more than once")
	}
	if !strings.HasPrefix(lines[1], "1,blue,Spring,3") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "2,red,Spring,2") {
		t.Errorf("last row = %q", lines[4])
	}
}

func TestWriteConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "world:") {
		t.Error("config snapshot missing world section")
	}
}
