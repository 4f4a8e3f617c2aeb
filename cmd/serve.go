package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cheeselab/cheesequiz/internal/bank"
	"github.com/cheeselab/cheesequiz/internal/config"
	"github.com/cheeselab/cheesequiz/internal/logging"
	"github.com/cheeselab/cheesequiz/internal/report"
	"github.com/cheeselab/cheesequiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question endpoint and answer log receiver",
	Long: `Serve questions from a JSON bank (the embedded sample bank by default)
on GET /questions and the legacy GET /exec, and store answer logs posted
to POST /logs in the local database.`,
	RunE: runServe,
}

func init() {
	def := config.Default()
	serveCmd.Flags().String(config.KeyAddr, def.Server.Addr, "Listen address")
	serveCmd.Flags().String(config.KeyBank, "", "JSON question bank file (default: embedded sample bank)")
	serveCmd.Flags().String(config.KeyCORSOrigins, "*", "Comma-separated allowed CORS origins; empty disables CORS")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log := logging.Console(cfg.LogLevel)
	logStartup(log, cfg, "serve")

	b, err := bank.Load(cfg.Server.BankPath)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(b, report.NewStoreSink(st.AnswerLogRepo()), log, cfg.Server.CORSOrigins)
	return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
}
