// Command scratchdemo shows a scratch card, either headless from a gesture
// script or interactively in a terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/internal/config"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string
	prize      string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "scratchdemo",
		Short:         "Scratch-to-reveal card demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	root.PersistentFlags().StringVar(&a.prize, "prize", "You win!", "text printed on the hidden content")

	root.AddCommand(newRenderCmd(a), newPlayCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	scratch.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	a.cfg = cfg
	return nil
}

// newCard builds a card from the loaded config.
func (a *app) newCard(extra ...scratch.TrackerOption) (*scratch.Card, error) {
	cc, err := a.cfg.CoatingConfig()
	if err != nil {
		return nil, err
	}
	return scratch.NewCard(a.cfg.Width, a.cfg.Height, cc, a.cfg.TrackerOptions(extra...)...)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scratchdemo:", err)
		os.Exit(1)
	}
}
