package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/tatealive/claimclam/internal/expense"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("claimclam")
	var (
		port              = fs.IntLong("port", 8080, "HTTP server port")
		dbPath            = fs.StringLong("db", "claimclam.db", "Database file path")
		requireAttachment = fs.BoolLong("require-attachment", "Reject submissions without a receipt attachment")
		showVersion       = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CLAIMCLAM"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	slog.Info("Opening expense state...", "path", *dbPath)
	state, err := expense.NewBoltStateStore(*dbPath)
	if err != nil {
		slog.Error("Failed to open expense state", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// A failed write leaves the session's changes intact; just warn that
	// persistence is degraded.
	store := expense.NewStoreWithDeps(state, nil, func(err error) {
		slog.Warn("Persistence degraded, changes live in memory only", "error", err)
	})

	unsubscribe := store.Subscribe(func(snapshot []*expense.Record) {
		slog.Debug("Expense collection changed", "records", len(snapshot))
	})
	defer unsubscribe()

	policy := expense.Policy{AttachmentRequired: *requireAttachment}
	validator := expense.NewValidator(policy)
	server := expense.NewServer(store, validator)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *requireAttachment {
		slog.Info("Attachment policy: required")
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
