package test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

var tmpDir string

// Fixture returns the path of a source file under fixtures/.
func Fixture(name string) string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		fmt.Fprintln(os.Stderr, "cannot find source file")
		os.Exit(1)
	}
	return filepath.Join(filepath.Dir(filename), "fixtures", name)
}

// TempFile writes content to name inside the per-run temp dir.
func TempFile(name, content string) string {
	path := filepath.Join(tmpDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return path
}

// TempDir returns the per-run temp dir.
func TempDir() string {
	return tmpDir
}

func Run(m *testing.M) int {
	var err error
	tmpDir, err = os.MkdirTemp("", "bpmagick-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	return code
}
