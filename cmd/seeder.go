package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/internal/expense"
	expensePostgres "github.com/splitmate/splitmate/internal/expense/postgres"
	"github.com/splitmate/splitmate/internal/group"
	groupPostgres "github.com/splitmate/splitmate/internal/group/postgres"
	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/settlement"
	settlementPostgres "github.com/splitmate/splitmate/internal/settlement/postgres"
	"github.com/splitmate/splitmate/internal/user"
	userPostgres "github.com/splitmate/splitmate/internal/user/postgres"
	"github.com/splitmate/splitmate/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, groups, expenses and settlements for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gormDB, sqlDB, err := openGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		if clearData {
			for _, table := range []string{
				"settlements", "expense_splits", "expense_participants",
				"expenses", "group_members", "groups", "users",
			} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("cleared existing data")
		}

		appLogger := logger.LoggerWrapper()
		bus := events.NewEventBus(appLogger)

		userService := user.NewService(userPostgres.NewUserRepository(gormDB), appLogger)
		groupService := group.NewService(groupPostgres.NewGroupRepository(gormDB), appLogger)
		expenseService := expense.NewService(expensePostgres.NewExpenseRepository(gormDB), bus, appLogger)
		settlementService := settlement.NewService(settlementPostgres.NewSettlementRepository(gormDB), bus, appLogger)

		ctx := context.Background()

		invite := func(name, mobile string) string {
			u, err := userService.InviteUser(user.InviteUserDTO{Name: name, Mobile: mobile})
			if err != nil {
				log.Fatalf("failed to seed user %s: %v", name, err)
			}
			return u.ID
		}

		alice := invite("Alice", "+919000000001")
		bob := invite("Bob", "+919000000002")
		carol := invite("Carol", "+919000000003")

		trip, err := groupService.CreateGroup(group.CreateGroupDTO{
			Name:      "Goa Trip",
			CreatedBy: alice,
			Members:   []string{bob, carol},
		})
		if err != nil {
			log.Fatalf("failed to seed group: %v", err)
		}

		daysAgo := func(n int) *time.Time {
			d := time.Now().AddDate(0, 0, -n)
			return &d
		}

		expenses := []expense.CreateExpenseDTO{
			{
				Title: "Beach shack dinner", Amount: decimal.NewFromInt(300),
				Date: daysAgo(6), Category: "Food",
				PaidBy: alice, GroupID: trip.ID,
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{alice, bob, carol},
			},
			{
				Title: "Scooter rental", Amount: decimal.NewFromInt(120),
				Date: daysAgo(5), Category: "Travel",
				PaidBy: bob, GroupID: trip.ID,
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{alice, bob},
			},
			{
				Title: "Hotel night", Amount: decimal.NewFromInt(150),
				Date: daysAgo(4), Category: "Stay",
				PaidBy: alice, GroupID: trip.ID,
				SplitType: ledger.SplitTypeUnequal,
				SplitDetails: []expense.SplitDetailDTO{
					{UserID: bob, Amount: decimal.NewFromInt(90)},
					{UserID: carol, Amount: decimal.NewFromInt(60)},
				},
			},
			{
				Title: "Groceries", Amount: decimal.NewFromInt(80),
				Date: daysAgo(2), Category: "Food",
				PaidBy: carol,
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{alice, carol},
			},
		}
		for _, dto := range expenses {
			if _, err := expenseService.CreateExpense(ctx, dto); err != nil {
				log.Fatalf("failed to seed expense %q: %v", dto.Title, err)
			}
		}

		if _, err := settlementService.RecordSettlement(ctx, settlement.CreateSettlementDTO{
			FromUserID: bob,
			ToUserID:   alice,
			Amount:     decimal.NewFromInt(100),
			GroupID:    trip.ID,
			SettledAt:  daysAgo(1),
			Note:       "part of the trip tab",
		}); err != nil {
			log.Fatalf("failed to seed settlement: %v", err)
		}

		fmt.Println("Seeded 3 users, 1 group, 4 expenses and 1 settlement")
	},
}
