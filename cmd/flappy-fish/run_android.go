//go:build android

package main

import (
	"flappy-fish/internal/host"
	"flappy-fish/internal/host/mobile"
)

func run(opts host.Options) error {
	return mobile.Run(opts)
}
