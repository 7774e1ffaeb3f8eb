package main

import (
	"errors"
	"flag"
	"io/fs"
	"runtime"

	"Seascape/internal/config"
	"Seascape/internal/engine"
	"Seascape/internal/logger"

	"go.uber.org/zap"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath  = flag.String("config", "seascape.toml", "TOML configuration file; defaults are used when it does not exist")
		writeConfig = flag.String("write-config", "", "write the default configuration to this path and exit")
		shaderDir   = flag.String("shaders", "", "directory of .vs/.fs overrides to load and hot reload")
		debugPass   = flag.Bool("debug-pass", true, "allow the shadow map overlay (toggled with B)")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	logger.Init()
	logger.SetLevel(*verbose)
	defer logger.Sync()

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, config.Default()); err != nil {
			logger.Log.Fatal("Could not write configuration", zap.String("path", *writeConfig), zap.Error(err))
		}
		logger.Log.Info("Default configuration written", zap.String("path", *writeConfig))
		return
	}

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Log.Info("No configuration file, using defaults", zap.String("path", *configPath))
		cfg = config.Default()
	case err != nil:
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shaders":
			cfg.Assets.ShaderDir = *shaderDir
		case "debug-pass":
			cfg.Pipeline.DebugPassEnabled = *debugPass
		}
	})

	if err := engine.Run(cfg); err != nil {
		logger.Log.Fatal("Seascape stopped", zap.Error(err))
	}
	logger.Log.Info("Seascape exited")
}
