package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/analytics"
	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/internal/expense"
	expensePostgres "github.com/splitmate/splitmate/internal/expense/postgres"
	"github.com/splitmate/splitmate/internal/group"
	groupPostgres "github.com/splitmate/splitmate/internal/group/postgres"
	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/settlement"
	settlementPostgres "github.com/splitmate/splitmate/internal/settlement/postgres"
	"github.com/splitmate/splitmate/internal/snapshot"
	"github.com/splitmate/splitmate/internal/user"
	userPostgres "github.com/splitmate/splitmate/internal/user/postgres"
	"github.com/splitmate/splitmate/pkg/logger"
)

var (
	reportUserID    string
	reportTimeRange string
	reportScope     string
	reportWith      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a spending report for a user",
	Long:  `Compute the user's balance summary, category and payer breakdowns, per-group balances and spend trend over the selected window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportUserID, "user", "u", "", "user id to report on")
	reportCmd.Flags().StringVarP(&reportTimeRange, "range", "r", "ALL", "time range: 30D, 90D or ALL")
	reportCmd.Flags().StringVarP(&reportScope, "scope", "s", "all", "scope: all, personal or a group id")
	reportCmd.Flags().StringVarP(&reportWith, "with", "w", "", "also print the running ledger against this user id")
	_ = reportCmd.MarkFlagRequired("user")
}

func runReport() error {
	cfg, err := loadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	gormDB, sqlDB, err := openGorm(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer sqlDB.Close()

	bus := events.NewEventBus(log)
	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(gormDB), bus, log)
	settlementService := settlement.NewService(settlementPostgres.NewSettlementRepository(gormDB), bus, log)
	groupService := group.NewService(groupPostgres.NewGroupRepository(gormDB), log)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), log)

	fetcher := snapshot.NewFetcher(expenseService, settlementService, groupService, userService, cfg.Poller.FetchTimeout)
	snap, err := fetcher.Fetch(internal.ContextWithUserID(context.Background(), reportUserID))
	if err != nil {
		return err
	}

	state := analytics.Compute(snap.Expenses, snap.Settlements, snap.Groups, snap.Users, reportUserID, analytics.Filter{
		TimeRange: analytics.TimeRange(reportTimeRange),
		Scope:     reportScope,
	})

	printSummary(state)
	printRanking("Top categories", state.CategoryTotals)
	printRanking("Top payers", state.PayerTotals)
	printGroupBalances(snap, reportUserID)
	printTrend(state)

	if reportWith != "" {
		printPairwise(snap, reportUserID, reportWith)
	}
	return nil
}

func printSummary(state analytics.State) {
	fmt.Printf("you owe: %s\n", state.YouOwe)
	fmt.Printf("owed to you: %s\n", state.OwesYou)
	fmt.Printf("total spent: %s across %d expenses\n", state.TotalSpent, state.TransactionCount)
	fmt.Printf("highest expense: %s\n", state.HighestExpense)
	fmt.Printf("settled: paid %s, received %s\n",
		state.SettlementTotals.Paid, state.SettlementTotals.Received)
	if state.TopDate != nil {
		fmt.Printf("busiest day: %s (%s)\n", state.TopDate.Label, state.TopDate.Value)
	}
	fmt.Println()
}

func printRanking(heading string, totals map[string]decimal.Decimal) {
	ranked := analytics.TopKWithOthers(totals, 5)
	if len(ranked) == 0 {
		return
	}
	fmt.Println(heading)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, entry := range ranked {
		fmt.Fprintf(w, "  %s\t%s\t%.1f%%\n", entry.Label, entry.Value, entry.Percentage)
	}
	w.Flush()
	fmt.Println()
}

func printGroupBalances(snap snapshot.Snapshot, viewerID string) {
	groupIDs := make([]string, len(snap.Groups))
	names := make(map[string]string, len(snap.Groups))
	for i, g := range snap.Groups {
		groupIDs[i] = g.ID
		names[g.ID] = g.Name
	}

	balances := ledger.GroupBalances(snap.Expenses, snap.Settlements, groupIDs, viewerID)

	fmt.Println("Group balances")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, id := range groupIDs {
		bal := balances[id]
		fmt.Fprintf(w, "  %s\tnet %s\t(get %s, pay %s, settled %s)\n",
			names[id], bal.Net, bal.Get, bal.Pay, bal.SettledNet)
	}
	w.Flush()
	fmt.Println()
}

func printTrend(state analytics.State) {
	points := analytics.Smooth(state.TrendSeries(analytics.TrendBucketMonthly, 12))
	if len(points) == 0 {
		return
	}
	fmt.Println("Monthly trend (smoothed)")
	for _, p := range points {
		fmt.Printf("  %s\t%.2f\n", p.Label, p.Value)
	}
	fmt.Println()
}

func printPairwise(snap snapshot.Snapshot, viewerID, otherID string) {
	balance := ledger.PairwiseBalance(snap.Expenses, snap.Settlements, viewerID, otherID)
	fmt.Printf("Balance with %s: %s\n", otherID, balance)

	for _, event := range ledger.PairwiseLedger(snap.Expenses, snap.Settlements, viewerID, otherID) {
		kind := "expense"
		if event.Kind == ledger.EventKindSettlement {
			kind = "settlement"
		}
		fmt.Printf("  %s\t%s\t%s\trunning %s\n",
			event.Date.Format("2006-01-02"), kind, event.Amount, event.RunningBalance)
	}
}
