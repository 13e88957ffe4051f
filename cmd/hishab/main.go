package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hishabkhata/hishab/internal/config"
	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/export"
	"github.com/hishabkhata/hishab/internal/kv"
	"github.com/hishabkhata/hishab/internal/logger"
	"github.com/hishabkhata/hishab/internal/remote"
	"github.com/hishabkhata/hishab/internal/remotesync"
	"github.com/hishabkhata/hishab/internal/store"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(log)
	case "list":
		runList(log)
	case "sync":
		runSync(log)
	case "export":
		runExport(log)
	case "categories":
		runCategories(log)
	case "clear":
		runClear(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("hishab - offline-first personal finance tracker")
	fmt.Println("\nUsage:")
	fmt.Println("  hishab <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add         Record a transaction in the local ledger")
	fmt.Println("  list        List transactions")
	fmt.Println("  sync        Push unsynced transactions to the server")
	fmt.Println("  export      Export the ledger as CSV")
	fmt.Println("  categories  Show transaction categories")
	fmt.Println("  clear       Delete every local transaction")
	fmt.Println("  help        Show this help message")
	fmt.Println("\nRun 'hishab <command> -h' for more information on a command.")
}

func openLedger(cfg config.Config, log zerolog.Logger) *store.TransactionStore {
	kvs, err := kv.NewFileStore(filepath.Join(cfg.DataDir, "kv"))
	if err != nil {
		log.Fatal().Err(err).Str("data_dir", cfg.DataDir).Msg("Failed to open local storage")
	}
	return store.New(kvs, cfg.Currency)
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "Transaction amount (required, non-negative)")
	txnType := fs.String("type", "expense", "Transaction type: income or expense")
	category := fs.String("category", "", "Category id")
	method := fs.String("method", "", "Payment method id")
	date := fs.String("date", "", "Business date (ISO 8601, defaults to now)")
	note := fs.String("note", "", "Free-text note")
	attach := fs.String("attach", "", "Comma-separated attachment file paths")
	currency := fs.String("currency", "", "Currency code (defaults to the configured currency)")
	fs.Parse(os.Args[2:])

	if *amount < 0 {
		log.Fatal().Msg("Error: --amount must be non-negative")
	}
	t := domain.TransactionType(*txnType)
	if t != domain.TypeIncome && t != domain.TypeExpense {
		log.Fatal().Str("type", *txnType).Msg("Error: --type must be income or expense")
	}

	cfg := config.Load()
	ctx := logger.WithContext(context.Background(), log)

	var attachments []string
	if *attach != "" {
		for _, a := range strings.Split(*attach, ",") {
			attachments = append(attachments, strings.TrimSpace(a))
		}
	}

	ledger := openLedger(cfg, log)
	txn := ledger.Create(ctx, domain.Transaction{
		Type:            t,
		Amount:          *amount,
		Currency:        *currency,
		CategoryID:      *category,
		PaymentMethodID: *method,
		Date:            *date,
		Note:            *note,
		Attachments:     attachments,
	})

	fmt.Printf("Recorded %s %s %.2f (%s)\n", txn.Type, txn.Currency, txn.Amount, txn.ID)
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	unsyncedOnly := fs.Bool("unsynced", false, "Show only transactions waiting to sync")
	fs.Parse(os.Args[2:])

	cfg := config.Load()
	ctx := logger.WithContext(context.Background(), log)
	ledger := openLedger(cfg, log)

	var list []domain.Transaction
	if *unsyncedOnly {
		list = ledger.ListUnsynced(ctx)
	} else {
		list = ledger.ListAll(ctx)
	}

	if len(list) == 0 {
		fmt.Println("No transactions.")
		return
	}
	for _, txn := range list {
		status := " "
		if txn.IsSynced {
			status = "*"
		}
		note := txn.Note
		if note != "" {
			note = "  " + note
		}
		fmt.Printf("%s %-28s %-7s %10.2f %s  %s%s\n",
			status, txn.ID, txn.Type, txn.Amount, txn.Currency, txn.Date, note)
	}
	fmt.Printf("%d transaction(s); * = synced\n", len(list))
}

func runSync(log zerolog.Logger) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "Server base URL (defaults to configuration)")
	token := fs.String("token", "", "Bearer token (defaults to configuration)")
	fs.Parse(os.Args[2:])

	cfg := config.Load()
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *token != "" {
		cfg.APIToken = *token
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	ledger := openLedger(cfg, log)
	client := remote.NewClient(cfg.APIBaseURL, cfg.APIToken)
	engine := remotesync.NewEngine(ledger, client, client)

	res := engine.SyncOnce(ctx)
	fmt.Printf("Sync finished: %d succeeded, %d failed.\n", res.Succeeded, res.Failed)
	if res.Failed > 0 {
		os.Exit(1)
	}
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "Output file (defaults to stdout)")
	fs.Parse(os.Args[2:])

	cfg := config.Load()
	ctx := logger.WithContext(context.Background(), log)
	ledger := openLedger(cfg, log)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("Failed to create output file")
		}
		defer f.Close()
		w = f
	}

	if err := export.WriteCSV(w, ledger.ListAll(ctx)); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}
}

func runCategories(log zerolog.Logger) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	fromServer := fs.Bool("remote", false, "Fetch categories from the server instead of the seeded set")
	fs.Parse(os.Args[2:])

	categories := domain.DefaultCategories
	if *fromServer {
		cfg := config.Load()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := remote.NewClient(cfg.APIBaseURL, cfg.APIToken)
		fetched, err := client.GetCategories(logger.WithContext(ctx, log))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch categories")
		}
		categories = fetched
	}

	for _, c := range categories {
		fmt.Printf("%-14s %-8s %s\n", c.ID, c.Type, c.Name)
	}
}

func runClear(log zerolog.Logger) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Confirm deletion of all local transactions")
	fs.Parse(os.Args[2:])

	if !*yes {
		log.Fatal().Msg("Refusing to clear the ledger without --yes")
	}

	cfg := config.Load()
	ctx := logger.WithContext(context.Background(), log)
	if err := openLedger(cfg, log).Clear(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to clear transactions")
	}
	fmt.Println("Local ledger cleared.")
}
