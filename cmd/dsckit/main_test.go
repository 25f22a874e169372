package main

import (
	"testing"

	"github.com/harrison/dsckit/internal/cmd"
)

func TestVersionDefault(t *testing.T) {
	if cmd.Version == "" {
		t.Error("Version should not be empty")
	}
}
