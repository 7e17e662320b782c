package cuebench

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func demoTable() SweepTable {
	return SweepTable{
		{Cost: 3.15, CUE: 0.672},
		{Cost: 12.81, CUE: 0.645},
		{Cost: 22.47, Err: errors.New("infeasible")},
		{Cost: 32.13, CUE: 0.590},
		{Cost: 41.79, CUE: 0.562},
	}
}

func TestSweepPlot_SkipsFailedPoints(t *testing.T) {
	p, err := SweepPlot(demoTable(), "toy model")
	if err != nil {
		t.Fatalf("SweepPlot failed: %v", err)
	}
	if p.Title.Text != "toy model" {
		t.Errorf("Title = %q", p.Title.Text)
	}
}

func TestSweepPlot_RequiresTwoValidPoints(t *testing.T) {
	table := SweepTable{
		{Cost: 1, CUE: 0.7},
		{Cost: 2, Err: errors.New("infeasible")},
	}
	if _, err := SweepPlot(table, ""); err == nil {
		t.Fatalf("Plot of a single valid point should fail")
	}
}

func TestSaveSweep_WritesChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.png")
	if err := SaveSweep(demoTable(), "toy model", path); err != nil {
		t.Fatalf("SaveSweep failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("Chart file is empty")
	}
}

func TestWriteSweep_ProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSweep(demoTable(), "toy model", &buf); err != nil {
		t.Fatalf("WriteSweep failed: %v", err)
	}

	magic := []byte{0x89, 'P', 'N', 'G'}
	if buf.Len() < len(magic) || !bytes.Equal(buf.Bytes()[:4], magic) {
		t.Errorf("Output does not look like a PNG (%d bytes)", buf.Len())
	}
}
