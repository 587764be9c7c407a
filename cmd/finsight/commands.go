package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/dashboard"
	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/insights"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

const dateLayout = "2006-01-02"

var errUsage = errors.New("invalid usage")

// API is what the CLI needs from the client.
type API interface {
	dashboard.API
	Health(ctx context.Context) error
}

type app struct {
	api     API
	out     io.Writer
	dash    *dashboard.Dashboard
	txs     *dashboard.TransactionEditor
	budgets *dashboard.BudgetEditor
}

func newApp(api API, events telemetry.Sink, out io.Writer) *app {
	return &app{
		api:     api,
		out:     out,
		dash:    dashboard.New(api, events, nil),
		txs:     dashboard.NewTransactionEditor(api, events),
		budgets: dashboard.NewBudgetEditor(api, events),
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "summary":
		return a.summary(ctx)
	case "insights":
		return a.insights(ctx, rest)
	case "monthly":
		return a.monthly(ctx)
	case "categories":
		return a.categories(ctx)
	case "list":
		return a.list(ctx)
	case "add":
		return a.add(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "budgets":
		return a.listBudgets(ctx, rest)
	case "set-budget":
		return a.setBudget(ctx, rest)
	case "delete-budget":
		return a.deleteBudget(ctx, rest)
	case "health":
		if err := a.api.Health(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "ok")
		return nil
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (a *app) summary(ctx context.Context) error {
	view := a.dash.Load(ctx, "")
	if view.Summary.State == dashboard.Failed {
		return errors.New(view.Summary.Err)
	}
	s := view.Summary.Data

	fmt.Fprintf(a.out, "Total spent: %.2f\n\n", s.Total)

	tw := newTable(a.out)
	fmt.Fprintln(tw, "TOP CATEGORY\tTOTAL")
	for _, c := range s.TopCategories {
		fmt.Fprintf(tw, "%s\t%.2f\n", c.Category, c.Total)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	return a.printTransactions(s.Recent)
}

func (a *app) insights(ctx context.Context, args []string) error {
	fs := newFlagSet("insights")
	month := fs.String("month", "", "month (YYYY-MM), default current")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *month != "" && !validator.IsMonthKey(*month) {
		return fmt.Errorf("%w: month must be in YYYY-MM format", errUsage)
	}

	view := a.dash.Load(ctx, *month)
	if view.Insights.State == dashboard.Failed {
		return errors.New(view.Insights.Err)
	}

	fmt.Fprintf(a.out, "Budget vs actual for %s\n\n", view.Month)
	tw := newTable(a.out)
	fmt.Fprintln(tw, "CATEGORY\tBUDGET\tACTUAL\tSTATUS")
	for _, row := range view.Insights.Data {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\n", row.Category, row.Budget, row.Actual, row.Status)
	}
	return tw.Flush()
}

func (a *app) monthly(ctx context.Context) error {
	txs, err := a.api.ListTransactions(ctx)
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "MONTH\tTOTAL")
	for _, m := range insights.MonthlyTotals(txs) {
		fmt.Fprintf(tw, "%s\t%.2f\n", m.Month, m.Total)
	}
	return tw.Flush()
}

func (a *app) categories(ctx context.Context) error {
	txs, err := a.api.ListTransactions(ctx)
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL")
	for _, c := range insights.NonZero(insights.CategoryTotals(txs)) {
		fmt.Fprintf(tw, "%s\t%.2f\n", c.Category, c.Total)
	}
	return tw.Flush()
}

func (a *app) list(ctx context.Context) error {
	txs, err := a.api.ListTransactions(ctx)
	if err != nil {
		return err
	}
	return a.printTransactions(txs)
}

func transactionFlags(name string, withID bool) (*flag.FlagSet, *string, *validator.TransactionInput) {
	fs := newFlagSet(name)
	in := &validator.TransactionInput{}
	var id *string
	if withID {
		id = fs.String("id", "", "transaction id")
	}
	fs.Float64Var(&in.Amount, "amount", 0, "amount spent")
	fs.StringVar(&in.Date, "date", "", "date (YYYY-MM-DD)")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&in.Category, "category", "", "category, default Other")
	return fs, id, in
}

func (a *app) add(ctx context.Context, args []string) error {
	fs, _, in := transactionFlags("add", false)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	tx, err := a.txs.Add(ctx, *in)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "added %s\n", tx.ID)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs, id, in := transactionFlags("edit", true)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	tx, err := a.txs.Update(ctx, *id, *in)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "updated %s\n", tx.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "transaction id")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := a.txs.Delete(ctx, *id); err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "deleted %s\n", *id)
	return nil
}

func (a *app) listBudgets(ctx context.Context, args []string) error {
	fs := newFlagSet("budgets")
	month := fs.String("month", "", "month (YYYY-MM)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	budgets, err := a.api.ListBudgets(ctx, *month)
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tCATEGORY\tMONTH\tAMOUNT")
	for _, b := range budgets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", b.ID, b.Category, b.Month, b.Amount)
	}
	return tw.Flush()
}

func (a *app) setBudget(ctx context.Context, args []string) error {
	fs := newFlagSet("set-budget")
	category := fs.String("category", "", "category")
	month := fs.String("month", "", "month (YYYY-MM)")
	amount := fs.Float64("amount", 0, "budget amount")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	b, err := a.budgets.Save(ctx, models.Category(*category), *month, *amount)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "budget %s %s set to %.2f\n", b.Category, b.Month, b.Amount)
	return nil
}

func (a *app) deleteBudget(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-budget")
	category := fs.String("category", "", "category")
	month := fs.String("month", "", "month (YYYY-MM)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := a.budgets.Delete(ctx, models.Category(*category), *month); err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "budget %s %s deleted\n", *category, *month)
	return nil
}

func (a *app) printTransactions(txs []models.Transaction) error {
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", tx.ID, tx.Date.Format(dateLayout), tx.Category, tx.Amount, tx.Description)
	}
	return tw.Flush()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// describe spells out local validation failures field by field.
func describe(err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}
	parts := make([]string, len(appErr.Fields))
	for i, f := range appErr.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Errorf("%s: %s", appErr.Message, strings.Join(parts, "; "))
}
