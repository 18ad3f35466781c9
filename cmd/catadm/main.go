// Command catadm is the operator CLI for the catalog administration backend:
// session management, per-kind CRUD, direct-to-storage image uploads, and
// bulk export.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/brickstash/catadm/config"
	"github.com/brickstash/catadm/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	app, err := bootstrap.NewApp(cfg, logger)
	if err != nil {
		logger.Error("wire application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in with username and password, storing tokens locally",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and discard locally stored tokens",
			run:         runLogout,
		},
		"signup": {
			name:        "signup",
			description: "Register a new account (does not sign in)",
			run:         runSignup,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the profile behind the stored session",
			run:         runWhoami,
		},
		"list": {
			name:        "list",
			description: "List records of a kind, with optional client-side filtering",
			run:         runList,
		},
		"get": {
			name:        "get",
			description: "Fetch one record by kind and id",
			run:         runGet,
		},
		"create": {
			name:        "create",
			description: "Create a record from a JSON payload",
			run:         runCreate,
		},
		"update": {
			name:        "update",
			description: "Apply a partial JSON update to a record",
			run:         runUpdate,
		},
		"delete": {
			name:        "delete",
			description: "Delete a record by kind and id",
			run:         runDelete,
		},
		"upload-image": {
			name:        "upload-image",
			description: "Upload an image to object storage, optionally attaching it to a record",
			run:         runUploadImage,
		},
		"dump": {
			name:        "dump",
			description: "Export every catalog kind as a single JSON document",
			run:         runDump,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: catadm <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(os.Stdout, "  %-14s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
