package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cheeselab/cheesequiz/internal/config"
	"github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/report"
	"github.com/cheeselab/cheesequiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cheesequiz",
	Short: "Image choice cheese quiz for the terminal",
	Long: `Cheese Quiz fetches one image choice question at a time from a question
endpoint, lets you pick an option, grades it and reports the answer log.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command. Cancelling ctx stops the TUI and the
// companion server.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	def := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyEndpoint, def.Quiz.Endpoint, "Question endpoint URL")
	pf.String(config.KeyExamKey, "", "Exam key sent with each question request")
	pf.String(config.KeyPeriod, "", "Period filter")
	pf.String(config.KeyTopic, "", "Topic filter")
	pf.String(config.KeyDifficulty, "", "Difficulty filter")
	pf.Int(config.KeyLimit, def.Quiz.Limit, "Number of questions requested per load")
	pf.Duration(config.KeyFetchTimeout, def.FetchTimeout, "Timeout of a single question request")
	pf.String(config.KeyLogEndpoint, "", "Post answer logs to this URL instead of the local database")
	pf.String(config.KeyDB, "", "Path to SQLite database file (overrides CHEESEQUIZ_DB env var)")
	pf.String(config.KeyLogLevel, def.LogLevel, "Log level: debug, info, warn, error")
	pf.String(config.KeyLogFile, "", "Log file used while the TUI runs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the answer log database at the configured path, falling
// back to the default XDG path.
func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newSink picks the HTTP log endpoint when configured, the local store
// otherwise. st may be nil only when a log endpoint is set.
func newSink(cfg config.Config, st *store.Store) report.Sink {
	if cfg.LogEndpoint != "" {
		return report.NewHTTPSink(cfg.LogEndpoint, &http.Client{Timeout: cfg.FetchTimeout})
	}
	return report.NewStoreSink(st.AnswerLogRepo())
}

func newLoader(cfg config.Config) *quiz.Loader {
	return quiz.NewLoader(nil, cfg.FetchTimeout)
}

func logStartup(log zerolog.Logger, cfg config.Config, cmd string) {
	log.Debug().
		Str("cmd", cmd).
		Str("endpoint", cfg.Quiz.Endpoint).
		Str("exam_key", cfg.Quiz.ExamKey).
		Int("limit", cfg.Quiz.Limit).
		Bool("remote_logs", cfg.LogEndpoint != "").
		Msg("starting")
}
