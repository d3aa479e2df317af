package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/internal/gesture"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		scriptPath string
		outDir     string
		scale      float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay a gesture script headlessly and write PNGs",
		Long: `Paints a card, replays a gesture script against it and prints the
erased percentage after each stroke. Writes coating.png (the coating
surface) and card.png (the card as displayed, coating over content).
Without --script a built-in zig-zag is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, scriptPath, outDir, scale)
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "YAML gesture script")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().Float64Var(&scale, "scale", 1, "display scale of card.png")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, scriptPath, outDir string, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", scale)
	}
	out := cmd.OutOrStdout()

	card, err := a.newCard(scratch.WithOnReveal(func(r scratch.Reveal) {
		fmt.Fprintf(out, "revealed at %.1f%% (forced=%v)\n", r.Percent, r.Forced)
	}))
	if err != nil {
		return err
	}

	script := defaultScript(a.cfg.Width, a.cfg.Height)
	if scriptPath != "" {
		if script, err = gesture.Load(scriptPath); err != nil {
			return err
		}
	}
	script.Replay(card, func(r gesture.Result) {
		fmt.Fprintf(out, "stroke %d: %3d samples %5.1f%% %s\n", r.Stroke+1, r.Samples, r.Percent, r.State)
	})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := card.Surface().SavePNG(filepath.Join(outDir, "coating.png")); err != nil {
		return err
	}

	dw := int(float64(a.cfg.Width) * scale)
	dh := int(float64(a.cfg.Height) * scale)
	content, err := prizeImage(a.cfg.Width, a.cfg.Height, a.prize)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(outDir, "card.png"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, card.Render(content, max(1, dw), max(1, dh))); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s and %s\n", filepath.Join(outDir, "coating.png"), filepath.Join(outDir, "card.png"))
	return f.Close()
}

// defaultScript sweeps the brush back and forth in eight rows down a w×h
// card. With the default brush and threshold it reveals the card.
func defaultScript(w, h int) *gesture.Script {
	fw, fh := float64(w), float64(h)
	s := &gesture.Script{}
	for i, y := range []float64{0.05, 0.17, 0.29, 0.41, 0.53, 0.65, 0.77, 0.89} {
		x0, x1 := 0.05*fw, 0.95*fw
		if i%2 == 1 {
			x0, x1 = x1, x0
		}
		s.Strokes = append(s.Strokes, gesture.Stroke{
			Points: []gesture.Point{{X: x0, Y: y * fh}, {X: x1, Y: y * fh}},
		})
	}
	return s
}
