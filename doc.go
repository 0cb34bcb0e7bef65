// Package liquid renders a full-viewport displacement transition between
// two images for [Ebitengine].
//
// A grayscale displacement map offsets the horizontal sampling coordinate
// of both images while they cross-dissolve, which reads as a liquid wipe.
// Hovering the window drives the blend value toward 1 and leaving drives it
// back toward 0, with a quartic ease-out tween (via [gween]).
//
// # Quick start
//
//	cfg := liquid.DefaultConfig()
//	src, err := liquid.LoadSources("a.jpg", "b.jpg", "filter.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage, err := liquid.NewStage(cfg, src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := liquid.Run(stage); err != nil {
//		log.Fatal(err)
//	}
//
// [Stage] implements [ebiten.Game], so it can also be embedded in an
// existing game loop by calling its Update, Draw and Layout methods.
//
// # Compositing
//
// Each output pixel is computed by the Kage shader in shaders/displace.kage.
// [Composite] is the same function in plain Go; [RenderFrame] uses it to
// render frames without a GPU, and the tests use it to check the shading
// rules.
//
// # Configuration
//
// [Config] is loaded from YAML by [LoadConfig]. With [Stage.Watch], edits to
// the file are re-applied while the window is open.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON list of pointer actions and screenshots;
// attach it with [Stage.SetTestRunner] for repeatable visual checks.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package liquid
