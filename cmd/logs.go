package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheeselab/cheesequiz/internal/config"
	"github.com/cheeselab/cheesequiz/internal/store"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect stored answer logs",
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent answer logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("count")
		session, _ := cmd.Flags().GetString("session")
		since, _ := cmd.Flags().GetDuration("since")

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit, ExamKey: cfg.Quiz.ExamKey, SessionID: session}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		logs, err := st.AnswerLogRepo().Query(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query logs: %w", err)
		}
		printLogs(cmd.OutOrStdout(), logs)
		return nil
	},
}

var logsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per exam key",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.AnswerLogRepo().StatsByExam(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func init() {
	logsListCmd.Flags().Int("count", 20, "Maximum number of logs to show")
	logsListCmd.Flags().String("session", "", "Only show logs of this widget session")
	logsListCmd.Flags().Duration("since", 0, "Only show logs newer than this, e.g. 24h")

	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsStatsCmd)
}

func printLogs(out io.Writer, logs []store.AnswerLog) {
	if len(logs) == 0 {
		fmt.Fprintln(out, "No answer logs found.")
		return
	}

	fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-14s  %-8s  %-7s  %-10s  %s\n",
		"ID", "Timestamp", "Exam", "Question", "Selected", "Correct", "Difficulty", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 96))

	for _, l := range logs {
		ok := "✓"
		if !l.IsCorrect {
			ok = "✗"
		}
		fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-14s  %-8s  %-7s  %-10s  %s\n",
			l.ID,
			l.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(l.ExamKey, 14),
			truncate(l.QuestionID, 14),
			l.SelectedIndex,
			l.CorrectIndex,
			truncate(l.Difficulty, 10),
			ok,
		)
	}
}

func printStats(out io.Writer, stats []store.ExamStats) {
	if len(stats) == 0 {
		fmt.Fprintln(out, "No answer logs found.")
		return
	}

	fmt.Fprintf(out, "%-20s  %8s  %8s  %8s\n", "Exam", "Attempts", "Correct", "Accuracy")
	fmt.Fprintln(out, strings.Repeat("─", 52))

	var attempts, correct int
	for _, s := range stats {
		key := s.ExamKey
		if key == "" {
			key = "(none)"
		}
		fmt.Fprintf(out, "%-20s  %8d  %8d  %7.1f%%\n", truncate(key, 20), s.Attempts, s.Correct, s.Accuracy()*100)
		attempts += s.Attempts
		correct += s.Correct
	}

	total := store.ExamStats{Attempts: attempts, Correct: correct}
	fmt.Fprintln(out, strings.Repeat("─", 52))
	fmt.Fprintf(out, "%-20s  %8d  %8d  %7.1f%%\n", "Total", attempts, correct, total.Accuracy()*100)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
