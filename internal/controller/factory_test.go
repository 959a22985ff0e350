package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, true)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY_WithRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "codeaudit-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(regular file) = true, want false")
	}
}

func TestIsTTY_WithCharDevice(t *testing.T) {
	file, err := os.Open("/dev/null")
	if err != nil {
		t.Skip("/dev/null not available")
	}
	defer file.Close()

	if !IsTTY(file) {
		t.Fatalf("IsTTY(/dev/null) = false, want true")
	}
}

func TestIsTTY_WithNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) = true, want false")
	}
}

func TestTerminalSize_NotATerminal(t *testing.T) {
	if _, _, ok := terminalSize(&bytes.Buffer{}); ok {
		t.Fatalf("terminalSize(buffer) ok = true, want false")
	}

	file, err := os.CreateTemp(t.TempDir(), "codeaudit-size")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer file.Close()

	if _, _, ok := terminalSize(file); ok {
		t.Fatalf("terminalSize(regular file) ok = true, want false")
	}
}
