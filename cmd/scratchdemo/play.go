package main

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/integration/tcellhost"
	"github.com/gogpu/scratch/internal/chime"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		volume float64
		mute   bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Scratch the card with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, volume, mute)
		},
	}
	cmd.Flags().Float64Var(&volume, "volume", 0.5, "chime volume in [0, 1]")
	cmd.Flags().BoolVar(&mute, "mute", false, "disable the reveal chime")
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, volume float64, mute bool) error {
	card, err := a.newCard()
	if err != nil {
		return err
	}
	content, err := prizeImage(a.cfg.Width, a.cfg.Height, a.prize)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	var opts []tcellhost.Option
	if !mute {
		c := chime.New(volume)
		if err := c.Init(); err != nil {
			// Non-fatal, the card works without sound.
			scratch.Logger().Warn("audio unavailable", slog.String("err", err.Error()))
		} else {
			defer c.Close()
			opts = append(opts, tcellhost.WithChime(c))
		}
	}

	return tcellhost.New(screen, card, content, opts...).Run(cmd.Context())
}
