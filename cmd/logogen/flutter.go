package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// applyFlutterTools runs the downstream asset generators that consume the
// files written to the output directory.
func applyFlutterTools(log *slog.Logger, skipIcons, skipSplash bool) error {
	if !skipIcons {
		log.Info("running flutter_launcher_icons")
		if err := runFlutter("pub", "run", "flutter_launcher_icons"); err != nil {
			return err
		}
	}
	if !skipSplash {
		log.Info("running flutter_native_splash")
		if err := runFlutter("pub", "run", "flutter_native_splash:create"); err != nil {
			return err
		}
	}
	return nil
}

func runFlutter(args ...string) error {
	path, err := exec.LookPath("flutter")
	if err != nil {
		return fmt.Errorf("flutter command not found, make sure Flutter is installed and in PATH: %w", err)
	}
	cmd := exec.Command(path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("flutter %v: %w", args, err)
	}
	return nil
}
