package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cheeselab/cheesequiz/internal/config"
	"github.com/cheeselab/cheesequiz/internal/logging"
	"github.com/cheeselab/cheesequiz/internal/quiz"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer questions without the TUI",
	Long: `Fetch a question, print its numbered choices, read the selection from
--choice or stdin, grade it and report the answer log.

Useful in scripts and for checking a question endpoint.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("choice", 0, "Selection for the first question (1-based); read from stdin when 0")
	askCmd.Flags().Int("count", 1, "Number of questions to ask")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	choice, _ := cmd.Flags().GetInt("choice")
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	log := logging.Console(cfg.LogLevel)
	logStartup(log, cfg, "ask")

	host := quiz.Host{}
	if cfg.LogEndpoint != "" {
		host.SubmitLogs = newSink(cfg, nil).Submit
	} else {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		host.SubmitLogs = newSink(cfg, st).Submit
	}

	w := quiz.NewWidget(cfg.Quiz, newLoader(cfg), host, log)
	correct, err := askLoop(cmd.Context(), w, cmd.InOrStdin(), cmd.OutOrStdout(), count, choice)
	if err != nil {
		return err
	}
	if count > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "── Summary: %d/%d correct ──\n", correct, count)
	}
	return nil
}

// askLoop asks count questions and returns how many were answered
// correctly. choice, when non-zero, answers the first question.
func askLoop(ctx context.Context, w *quiz.Widget, in io.Reader, out io.Writer, count, choice int) (int, error) {
	scanner := bufio.NewScanner(in)
	var correct int

	for i := 1; i <= count; i++ {
		var err error
		if i == 1 {
			err = w.Load(ctx)
		} else {
			err = w.Reload(ctx)
		}
		if err != nil {
			fmt.Fprintln(out, quiz.MsgLoadFailed)
			return correct, err
		}

		v := w.State()
		if count > 1 {
			fmt.Fprintf(out, "── Question %d/%d ──\n", i, count)
		}
		printQuestion(out, v.Question)

		answer := ""
		if i == 1 && choice != 0 {
			answer = strconv.Itoa(choice)
		} else {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break
			}
			answer = strings.TrimSpace(scanner.Text())
		}

		if answer != "" && !w.SelectNumeral(answer) {
			fmt.Fprintf(out, "ignoring %q: not an option\n", answer)
		}

		res, err := w.Grade(ctx)
		if err != nil {
			var stateErr *quiz.StateError
			if errors.As(err, &stateErr) {
				fmt.Fprintln(out, res.Message)
				fmt.Fprintln(out)
				continue
			}
			return correct, err
		}
		if res.Correct {
			correct++
		}
		fmt.Fprintln(out, res.Message)
		fmt.Fprintln(out)
	}
	return correct, nil
}

func printQuestion(out io.Writer, q *quiz.Question) {
	fmt.Fprintln(out, q.Text)
	for i, c := range q.Choices {
		label := quiz.Label(i)
		switch {
		case c.Empty():
			fmt.Fprintf(out, "  %d) (no option)\n", label)
		case c.Text != "" && c.ImageURL != "":
			fmt.Fprintf(out, "  %d) %s [%s]\n", label, c.Text, c.ImageURL)
		case c.Text != "":
			fmt.Fprintf(out, "  %d) %s\n", label, c.Text)
		default:
			fmt.Fprintf(out, "  %d) [image] %s\n", label, c.ImageURL)
		}
	}
}
