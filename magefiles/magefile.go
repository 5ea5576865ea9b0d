//go:build mage

// Package main provides build targets for funnelkit using Mage.
//
// Usage:
//
//	mage build     Compile funnelkit binary to bin/
//	mage test      Run all tests with the race detector
//	mage cover     Run tests and write coverage.out
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install funnelkit to GOPATH/bin
//	mage smoke     Build and run init, sync, categorize and stats in a temp dir
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "funnelkit"
	binaryDir  = "bin"
	cmdDir     = "./cmd/funnelkit"
	versionVar = "github.com/mesh-intelligence/funnelkit/internal/cli.Version"
	coverFile  = "coverage.out"
)

func ldflags() string {
	version := os.Getenv("FUNNELKIT_VERSION")
	if version == "" {
		return ""
	}
	return fmt.Sprintf("-X %s=%s", versionVar, version)
}

// Build compiles the funnelkit binary to bin/. FUNNELKIT_VERSION, when set,
// is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover runs all tests and writes a coverage profile.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile", coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func", coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds the binary and runs the main workflow against a throwaway
// config and data directory.
func Smoke() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "funnelkit-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(binaryDir, binaryName)
	base := []string{"--config-dir", filepath.Join(dir, "config"), "--data-dir", filepath.Join(dir, "data")}
	for _, args := range [][]string{
		{"init"},
		{"sync", "--concurrent"},
		{"categorize"},
		{"stats"},
	} {
		if err := sh.RunV(bin, append(base, args...)...); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
	}
	return nil
}
