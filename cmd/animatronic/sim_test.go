package main

import (
	"strings"
	"testing"
	"time"

	"github.com/calvinmclean/animatronic/motion"
)

func newTestSimModel(t *testing.T) simModel {
	t.Helper()
	m, err := newSimModel(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func typeInput(m *simModel, in string) {
	for i := range len(in) {
		m.input(in[i])
	}
}

func TestSimInput(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		expectErr     bool
		expectPending bool
		expectStatus  string
	}{
		{"Open", "O", false, false, "ran O"},
		{"Look", "LL", false, false, "ran LL"},
		{"Partial", "T", false, true, ""},
		{"InvalidLook", "LZ", true, false, ""},
		{"Debug", "D", false, false, "state is always shown above"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestSimModel(t)
			typeInput(&m, tt.in)

			if (m.err != nil) != tt.expectErr {
				t.Errorf("expected error=%v, got %v", tt.expectErr, m.err)
			}
			if m.parser.Pending() != tt.expectPending {
				t.Errorf("expected pending=%v", tt.expectPending)
			}
			if m.status != tt.expectStatus {
				t.Errorf("expected status %q, got %q", tt.expectStatus, m.status)
			}
		})
	}
}

func TestSimHelpToggles(t *testing.T) {
	m := newTestSimModel(t)

	typeInput(&m, "H")
	if !m.showHelp {
		t.Fatalf("expected help to be shown")
	}
	if !strings.Contains(m.View(), "O: ") {
		t.Errorf("expected help in view")
	}

	typeInput(&m, "H")
	if m.showHelp {
		t.Errorf("expected help to be hidden")
	}
}

func TestSimTickMovesServos(t *testing.T) {
	m := newTestSimModel(t)
	start, _, _ := m.head.Positions()

	typeInput(&m, "V050AE")

	for range 5 {
		next, _ := m.Update(tickMsg(time.Now()))
		m = next.(simModel)
	}

	left, right, _ := m.head.Positions()
	if left != start+5 || right != start+5 {
		t.Errorf("expected one step per tick from %d, got %d/%d", start, left, right)
	}
	if len(m.lastPositions) != 3 || m.lastPositions[0] != left {
		t.Errorf("expected chart positions to follow the servos, got %v", m.lastPositions)
	}
}

func TestSimResetUsesVirtualClock(t *testing.T) {
	m := newTestSimModel(t)
	typeInput(&m, "AE")
	before := m.clock.now

	typeInput(&m, "R")

	if !m.clock.now.After(before) {
		t.Errorf("expected blocking moves to advance the simulated clock")
	}
	left, right, jaw := m.head.Positions()
	if left != motion.HalfPosition || right != motion.HalfPosition || jaw != motion.JawClosedPosition {
		t.Errorf("unexpected positions after reset %d/%d/%d", left, right, jaw)
	}
}

func TestEyeCellsAreDistinct(t *testing.T) {
	seen := map[[2]int]bool{{eyeGridSize / 2, eyeGridSize / 2}: true}
	rings := []struct {
		n      int
		radius float64
	}{
		{8, innerRadius},
		{12, outerRadius},
	}

	for _, ring := range rings {
		for i := range ring.n {
			row, col := eyeCell(i, ring.n, ring.radius)
			if row < 0 || row >= eyeGridSize || col < 0 || col >= eyeGridSize {
				t.Fatalf("cell %d/%d outside grid: %d,%d", i, ring.n, row, col)
			}
			if seen[[2]int{row, col}] {
				t.Errorf("cell %d/%d overlaps at %d,%d", i, ring.n, row, col)
			}
			seen[[2]int{row, col}] = true
		}
	}
}

func TestViewShowsState(t *testing.T) {
	m := newTestSimModel(t)
	typeInput(&m, "EH")

	view := m.View()
	if !strings.Contains(view, "expression=Happy") {
		t.Errorf("expected expression in view, got %q", view)
	}
}
