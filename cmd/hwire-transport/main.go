// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// hwire-transport resolves fully-qualified interface names to their
// declared transports using a core and a device manifest.
//
// Usage:
//
//	hwire-transport --core-manifest core.yaml --device-manifest device.yaml NAME...
//
// Each NAME is printed with its resolved transport, tab separated.
// Exit status: 0 when every name resolved to a concrete transport,
// 1 when any resolution was undetermined, 2 on usage or load errors.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/hwire-foundation/hwire/lib/version"
	"github.com/hwire-foundation/hwire/manifest"
	"github.com/hwire-foundation/hwire/resolve"
)

func main() {
	os.Exit(run())
}

func run() int {
	var corePath string
	var devicePath string
	var coreNamespace string
	var logLevel string
	var showVersion bool

	flagSet := pflag.NewFlagSet("hwire-transport", pflag.ContinueOnError)
	flagSet.StringVar(&corePath, "core-manifest", "", "path to the core manifest (.yaml, .yml, .json, .jsonc)")
	flagSet.StringVar(&devicePath, "device-manifest", "", "path to the device manifest")
	flagSet.StringVar(&coreNamespace, "core-namespace", resolve.DefaultCoreNamespace, "package prefix resolved against the core manifest")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if showVersion {
		fmt.Printf("hwire-transport %s\n", version.Info())
		return 0
	}

	names := flagSet.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "error: no interface names given")
		fmt.Fprintln(os.Stderr, "usage: hwire-transport [flags] NAME...")
		flagSet.PrintDefaults()
		return 2
	}

	logger, err := newLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	resolver := resolve.Resolver{
		CoreNamespace: coreNamespace,
		Logger:        logger,
	}
	if corePath != "" {
		resolver.Core, err = manifest.LoadFile(corePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
	}
	if devicePath != "" {
		resolver.Device, err = manifest.LoadFile(devicePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
	}

	undetermined := false
	for _, name := range names {
		transport := resolver.Transport(name)
		if transport == manifest.TransportUndetermined {
			undetermined = true
		}
		fmt.Printf("%s\t%s\n", name, transport)
	}

	if undetermined {
		return 1
	}
	return 0
}

// newLogger builds a text slog handler at the requested level,
// writing to stderr so resolution output on stdout stays parseable.
func newLogger(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler), nil
}
