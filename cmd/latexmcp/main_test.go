package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := rootCommand()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %s", err)
	}
	if !strings.Contains(buf.String(), "latexmcp") {
		t.Errorf("Expected version output to contain binary name, got: %s", buf.String())
	}
}

func TestUnknownArgsRejected(t *testing.T) {
	root := rootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "extra"})

	if err := root.Execute(); err == nil {
		t.Error("Expected error for unexpected arguments, got nil")
	}
}
