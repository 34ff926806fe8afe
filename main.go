package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/skyfall/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	configPath := flag.String("config", "assets/config/game.yaml", "path to game config file (empty for built-in defaults)")
	difficulty := flag.String("difficulty", "", "start a battle immediately at the given difficulty (easy/normal/hard)")
	watch := flag.Bool("watch", false, "reload the config file when it changes on disk")
	flag.Parse()

	application, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		Difficulty:  *difficulty,
		WatchConfig: *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "skyfall: %v\n", err)
		os.Exit(1)
	}

	width, height := application.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Skyfall")
	// 关闭事件由 App.Update 接管，以便退出前保存设置
	ebiten.SetWindowClosingHandled(true)

	if application.GetSettingsManager().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(application); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
