package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/internal/expense"
	expensePostgres "github.com/splitmate/splitmate/internal/expense/postgres"
	"github.com/splitmate/splitmate/internal/group"
	groupPostgres "github.com/splitmate/splitmate/internal/group/postgres"
	"github.com/splitmate/splitmate/internal/settlement"
	settlementPostgres "github.com/splitmate/splitmate/internal/settlement/postgres"
	"github.com/splitmate/splitmate/internal/snapshot"
	"github.com/splitmate/splitmate/internal/user"
	userPostgres "github.com/splitmate/splitmate/internal/user/postgres"
	"github.com/splitmate/splitmate/pkg/logger"
)

var watchUserID string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch balances for a user",
	Long:  `Poll the ledger and print the user's balance summary plus a notification for every expense someone else adds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchUserID, "user", "u", "", "user id to watch balances for")
	_ = watchCmd.MarkFlagRequired("user")
}

func runWatch() error {
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
	refresher := snapshot.NewRefresher(fetcher, watchUserID, cfg.Poller.Interval,
		func(n snapshot.Notification) {
			fmt.Printf("* %s\n", n.Message)
		}, log)
	refresher.Register(bus)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := refresher.Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("watching balances for %s: you owe %s, owed to you %s (%d expenses)\n",
		watchUserID, snap.Summary.YouOwe, snap.Summary.OwesYou, snap.Summary.TransactionCount)

	log.Info("watch started", "user_id", watchUserID, "interval", cfg.Poller.Interval)
	refresher.Start(ctx)
	return nil
}
