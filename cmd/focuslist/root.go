package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focuslist/internal/config"
	"github.com/sandeepkv93/focuslist/internal/session"
	"github.com/sandeepkv93/focuslist/internal/storage"
	"github.com/sandeepkv93/focuslist/internal/update"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "focuslist",
		Short: "Chat-driven task list with a focus timer",
		Long: `focuslist asks an assistant to break a goal into short steps, turns the
steps into a task list and walks through them one focus block at a time.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTUI(ctx, cfg)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.AddCommand(newServeCmd(&configPath))
	return root
}

func runTUI(ctx context.Context, cfg config.RuntimeConfig) error {
	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(session.Options{
		FocusDuration:   cfg.FocusDuration(),
		HighlightWindow: cfg.HighlightWindow,
	})
	if err != nil {
		return err
	}

	opts := update.Options{
		Context:        ctx,
		Session:        sess,
		Completer:      completer,
		RequestTimeout: cfg.RequestTimeout,
	}
	if cfg.DBPath != "" {
		repo, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", cfg.DBPath, err)
		}
		defer repo.Close()
		opts.Repo = repo
	}

	model, err := update.NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
