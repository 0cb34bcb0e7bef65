// Liquid shows one image full-window and dissolves it into a second image
// through a displacement map while the pointer hovers the window.
//
// Usage:
//
//	liquid [-config liquid.yaml] [-watch] [-debug]
//	liquid -script run.json [-exit]
//	liquid -render out.png [-d 0.5] [-size 800x600]
//
// Keys: S saves a screenshot, C copies the frame to the clipboard, F toggles
// fullscreen.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/phanxgames/liquid"
	_ "github.com/silbinarywolf/preferdiscretegpu"
)

const proceduralSize = 1024

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	watch := flag.Bool("watch", false, "reload tunables when the config file changes")
	debug := flag.Bool("debug", false, "enable debug overlay and timing logs")
	script := flag.String("script", "", "JSON test script to drive the pointer")
	exit := flag.Bool("exit", false, "exit when the test script finishes")
	render := flag.String("render", "", "render one frame on the CPU to this PNG and exit")
	blend := flag.Float64("d", 0, "blend value for -render, 0..1")
	size := flag.String("size", "", "frame size for -render as WxH (window size when empty)")
	seed := flag.Uint64("seed", 1, "seed for the generated displacement map")
	flag.Parse()

	cfg, err := liquid.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	src, err := loadSources(cfg, *seed)
	if err != nil {
		log.Fatal(err)
	}

	if *render != "" {
		w, h := cfg.Width, cfg.Height
		if *size != "" {
			if _, err := fmt.Sscanf(*size, "%dx%d", &w, &h); err != nil {
				log.Fatalf("invalid -size %q: %v", *size, err)
			}
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := renderPNG(ctx, cfg, src, *blend, w, h, *render); err != nil {
			log.Fatal(err)
		}
		return
	}

	stage, err := liquid.NewStage(cfg, src)
	if err != nil {
		log.Fatal(err)
	}
	stage.SetDebugMode(*debug)

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := liquid.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		stage.SetTestRunner(runner, *exit)
	}

	if *watch {
		if *configPath == "" {
			log.Fatal("-watch needs -config")
		}
		if err := stage.Watch(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	if err := liquid.Run(stage); err != nil {
		log.Fatal(err)
	}
}

func loadSources(cfg liquid.Config, seed uint64) (*liquid.Sources, error) {
	if !cfg.HasAssets() {
		liquid.Logger.Printf("no images configured, generating %dx%d stand-ins", proceduralSize, proceduralSize)
		return liquid.GenerateSources(proceduralSize, proceduralSize, seed), nil
	}
	return liquid.LoadSources(cfg.ImageA, cfg.ImageB, cfg.Displacement)
}

func renderPNG(ctx context.Context, cfg liquid.Config, src *liquid.Sources, blend float64, w, h int, path string) error {
	img, err := liquid.RenderFrame(ctx, cfg, src, blend, w, h)
	if err != nil {
		return err
	}
	if err := liquid.WritePNG(path, img); err != nil {
		return err
	}
	liquid.Logger.Printf("wrote %s (%dx%d, d=%.3f)", path, w, h, blend)
	return nil
}
