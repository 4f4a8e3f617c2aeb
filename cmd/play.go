package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheeselab/cheesequiz/internal/app"
	"github.com/cheeselab/cheesequiz/internal/config"
	"github.com/cheeselab/cheesequiz/internal/logging"
	"github.com/cheeselab/cheesequiz/internal/screens/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive quiz (default command)",
	RunE:  runPlay,
}

// runPlay opens the store, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file.
	log, logFile, err := logging.File(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logStartup(log, cfg, "play")

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(cmd.Context(), quiz.Options{
		Config:  cfg.Quiz,
		Fetcher: newLoader(cfg),
		Submit:  newSink(cfg, st).Submit,
		Logs:    st.AnswerLogRepo(),
		Logger:  log,
	})
}
