// Package cli wires configuration, storage and the session into cobra
// commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sadopc/dualtrack/internal/config"
	"github.com/sadopc/dualtrack/internal/logging"
	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/store"
	"github.com/sadopc/dualtrack/internal/tui"
)

// New builds the root command. With no subcommand it starts the TUI.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dualtrack",
		Short:         "Track daily tasks, moods, habits and weekly goals in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("dualtrack needs a terminal; use `dualtrack report` or `dualtrack export` instead")
			}
			return runTUI()
		},
	}

	addReport(cmd)
	addExport(cmd)
	addReset(cmd)
	addServe(cmd)
	addConfig(cmd)
	return cmd
}

// Execute runs the root command and prints any error to stderr.
func Execute() int {
	if err := New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func runTUI() error {
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(e.sess, e.cats, tui.Options{
		SeriesDays:  e.cfg.SeriesDays,
		ClickWindow: e.cfg.ClickWindow,
		ExportDir:   e.cfg.DataDir,
		Log:         e.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// env is everything a command needs once configuration is loaded.
type env struct {
	cfg     config.Config
	log     *logrus.Logger
	backend store.Backend
	sess    *session.Session
	cats    *store.Categories
	closers []io.Closer
}

// openEnv loads config, the logger and the store. Logs go to logOut when
// it is non-nil, otherwise to the configured log file.
func openEnv(logOut io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	if logOut != nil {
		e.log, err = logging.New(cfg.LogLevel, logOut)
	} else {
		var c io.Closer
		e.log, c, err = logging.NewFile(cfg.LogLevel, cfg.LogFile)
		if c != nil {
			e.closers = append(e.closers, c)
		}
	}
	if err != nil {
		return nil, err
	}

	e.backend, err = store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append([]io.Closer{e.backend}, e.closers...)
	e.log.WithFields(logrus.Fields{"backend": cfg.Backend, "data_dir": cfg.DataDir}).Debug("store opened")

	e.sess = session.Open(store.NewStateStore(e.backend, e.log), e.log)
	e.cats = store.NewCategories(e.backend, e.log)
	return e, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		c.Close()
	}
}
