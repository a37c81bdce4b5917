package main

import (
	"flag"

	"github.com/xlab/closer"

	"flappy-fish/internal/assets"
	"flappy-fish/internal/audio"
	"flappy-fish/internal/audio/otoplayer"
	"flappy-fish/internal/config"
	"flappy-fish/internal/host"
	"flappy-fish/internal/logging"
)

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "path to a settings TOML file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln("load config:", err)
	}
	config.Set(settings)
	logging.SetLevel(settings.Log.Level)

	player := newPlayer(settings.Audio)
	closer.Bind(func() {
		if err := player.Close(); err != nil {
			logging.Warn("close audio: %v", err)
		}
	})

	opts := host.Options{
		Settings: settings,
		Assets: assets.Fallback{
			Primary:   assets.Dir(settings.Assets.Dir),
			Secondary: assets.Placeholders{},
		},
		Audio: player,
	}
	if err := run(opts); err != nil {
		closer.Fatalln(err)
	}
}

func newPlayer(cfg config.AudioSettings) audio.Player {
	if !cfg.Enabled {
		return audio.Nop{}
	}
	p, err := otoplayer.New(cfg.MusicVolume, cfg.SFXVolume)
	if err != nil {
		logging.Warn("audio disabled: %v", err)
		return audio.Nop{}
	}
	return p
}
