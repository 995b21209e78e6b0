package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestGenerateRejectsMissingOutDir ensures the generate command validates
// --out eagerly instead of failing later while writing files.
func TestGenerateRejectsMissingOutDir(t *testing.T) {
	cmd := Command
	args := []string{
		"witpy",
		"generate",
		"--out", filepath.Join(t.TempDir(), "does-not-exist"),
		"-",
	}

	if err := cmd.Run(context.Background(), args); err == nil {
		t.Fatal("expected an error for a missing --out directory, got nil")
	}
}

// TestGenerateRejectsOutFile ensures --out must name a directory, not a file.
func TestGenerateRejectsOutFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := Command
	args := []string{
		"witpy",
		"generate",
		"--out", file,
		"-",
	}

	if err := cmd.Run(context.Background(), args); err == nil {
		t.Fatal("expected an error when --out names a file, got nil")
	}
}
