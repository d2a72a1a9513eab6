// Command fintrack is the interactive terminal frontend: manual entry,
// listing, spending analysis and CSV import over the shared store.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"fintrack/internal/cli"
	"fintrack/internal/importer"
	"fintrack/internal/services"
)

type app struct {
	svc *services.TransactionService
	imp *importer.Importer
	in  *bufio.Reader
}

func main() {
	reset := flag.Bool("reset", false, "wipe all stored transactions before starting")
	strict := flag.Bool("strict-import", false, "apply manual-entry validation to CSV rows")
	flag.Parse()

	logger := cli.SetupLogger("cli")
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStore(logger, cfg.DBPath)
	defer repo.Close()

	ctx := context.Background()
	if *reset {
		if err := repo.Reset(ctx); err != nil {
			logger.Error("Failed to reset store", "error", err)
			os.Exit(1)
		}
		fmt.Println("Store wiped.")
	}

	a := &app{
		svc: services.NewTransactionService(repo),
		imp: importer.New(repo, importer.Options{Strict: *strict}),
		in:  bufio.NewReader(os.Stdin),
	}
	a.run(ctx)
}

func (a *app) run(ctx context.Context) {
	for {
		fmt.Println("\n=== Personal Finance Tracker ===")
		fmt.Println("[1] Add Transaction")
		fmt.Println("[2] View Transactions")
		fmt.Println("[3] Analyze Spending")
		fmt.Println("[4] Import CSV")
		fmt.Println("[5] Exit")

		switch a.prompt("Choose an option: ") {
		case "1":
			a.addTransaction(ctx)
		case "2":
			a.viewTransactions(ctx)
		case "3":
			a.analyzeSpending(ctx)
		case "4":
			a.importCSV(ctx)
		case "5":
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *app) addTransaction(ctx context.Context) {
	date := a.prompt("Enter transaction date (YYYY-MM-DD): ")
	category := a.prompt("Enter transaction category (e.g., Food, Rent): ")
	amount := a.prompt("Enter transaction amount: ")
	description := a.prompt("Enter transaction description (optional): ")

	t, err := a.svc.AddTransaction(ctx, date, category, amount, description)
	if err != nil {
		fmt.Printf("Could not add transaction: %v\n", err)
		return
	}
	fmt.Printf("Transaction #%d added successfully!\n", t.ID)
}

func (a *app) viewTransactions(ctx context.Context) {
	ts, err := a.svc.ListTransactions(ctx)
	if err != nil {
		fmt.Printf("Error retrieving transactions: %v\n", err)
		return
	}
	if len(ts) == 0 {
		fmt.Println("No transactions found.")
		return
	}
	for _, t := range ts {
		fmt.Printf("ID: %d, Date: %s, Category: %s, Amount: $%.2f, Description: %s\n",
			t.ID, t.Date, t.Category, t.Amount, t.Description)
	}
}

func (a *app) analyzeSpending(ctx context.Context) {
	byCategory, err := a.svc.SummaryByCategory(ctx)
	if err != nil {
		fmt.Printf("Error analyzing spending: %v\n", err)
		return
	}
	if len(byCategory) == 0 {
		fmt.Println("No transactions to analyze.")
		return
	}

	fmt.Println("Spending by Category:")
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("  %s: $%.2f\n", c, byCategory[c])
	}

	byMonth, err := a.svc.SummaryByMonth(ctx)
	if err != nil {
		fmt.Printf("Error analyzing spending: %v\n", err)
		return
	}
	fmt.Println("Monthly Spending:")
	for _, m := range byMonth {
		fmt.Printf("  %s: $%.2f\n", m.Month, m.Total)
	}
}

func (a *app) importCSV(ctx context.Context) {
	path := a.prompt("Enter CSV file path: ")
	if path == "" {
		fmt.Println("No file given.")
		return
	}
	n, err := a.imp.ImportFile(ctx, path)
	if err != nil {
		fmt.Printf("Failed to import CSV: %v\n", err)
		return
	}
	fmt.Printf("CSV file imported successfully (%d transactions).\n", n)
}
