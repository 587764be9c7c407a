// Command finsight is a terminal dashboard for the finance API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/client"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/logger"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
)

const usage = `usage: finsight <command> [flags]

commands:
  summary                 total spent, top categories and recent transactions
  insights [-month M]     budget vs actual for a month (default: current)
  monthly                 spending per month
  categories              spending per category
  list                    every transaction
  add                     add a transaction (-amount -date -description [-category])
  edit                    replace a transaction (-id -amount -date -description [-category])
  delete                  delete a transaction (-id)
  budgets [-month M]      list budgets
  set-budget              create or update a budget (-category -month -amount)
  delete-budget           delete a budget (-category -month)
  health                  check the API
`

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.InitLevel(cfg.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(client.Options{
		BaseURL:    cfg.APIURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		RetryMax:   cfg.RetryMax,
		Logger:     log,
	})

	a := newApp(api, telemetry.NewLog(log), os.Stdout)
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "finsight: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	_, _ = io.WriteString(w, usage)
}
