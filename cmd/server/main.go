package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/newsdeskhq/newsdesk/internal/auth"
	"github.com/newsdeskhq/newsdesk/internal/config"
	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/internal/server/storage/sqlite"
	"github.com/newsdeskhq/newsdesk/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	fs := flag.NewFlagSet("newsdesk-server", flag.ExitOnError)
	showVersion := fs.Bool("version", false, "show version information")
	createAdmin := fs.String("create-admin", "", "create an admin user with the given email and exit")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		printVersion()
		return
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	if *createAdmin != "" {
		if err := runCreateAdmin(ctx, store, cfg.BcryptCost, *createAdmin); err != nil {
			logger.Error("failed to create admin", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	srv := server.New(cfg, logger, store, Version)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// runCreateAdmin интерактивно создает администратора
// Пароль читается с терминала без эха
func runCreateAdmin(ctx context.Context, store *sqlite.Storage, bcryptCost int, email string) error {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	password, err := readPassword("Admin password: ")
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	hasher := auth.NewPasswordHasher(bcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return fmt.Errorf("email %s is already registered", email)
		}
		return err
	}

	fmt.Printf("Admin user created: id=%d email=%s\n", user.ID, user.Email)
	return nil
}

// readPassword читает пароль с терминала без эха
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())

	pwBytes, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(string(pwBytes)), nil
}

// newLogger создает slog логгер с заданным уровнем
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Newsdesk Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
