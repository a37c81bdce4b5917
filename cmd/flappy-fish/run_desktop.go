//go:build !android

package main

import (
	"runtime"

	"flappy-fish/internal/host"
	"flappy-fish/internal/host/desktop"
)

func init() {
	runtime.LockOSThread()
}

func run(opts host.Options) error {
	return desktop.Run(opts)
}
