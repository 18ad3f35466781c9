package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	"github.com/brickstash/catadm/internal/ports"
)

type loginOptions struct {
	Username string
	Password string
}

type signupOptions struct {
	Username string
	Email    string
	Password string
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}

	if err := cmdCtx.App.Session.Login(cmdCtx.Ctx, opts.Username, opts.Password); err != nil {
		return err
	}

	user, ok := cmdCtx.App.Session.CurrentUser()
	if !ok {
		return errors.New("login succeeded but no profile is available")
	}

	role := "member"
	if user.IsAdmin() {
		role = "administrator"
	}
	return writef(os.Stdout, "Signed in as %s (%s)\n", user.Username, role)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Local-only teardown: tokens are discarded without a backend call, so
	// logout works offline and is safe to repeat.
	cmdCtx.App.Session.SignOut()
	return writeln(os.Stdout, "Signed out.")
}

func runSignup(cmdCtx *commandContext, args []string) error {
	opts, err := parseSignupFlags(args)
	if err != nil {
		return err
	}

	if err := cmdCtx.App.Session.Signup(cmdCtx.Ctx, ports.SignupInput{
		Username: opts.Username,
		Email:    opts.Email,
		Password: opts.Password,
	}); err != nil {
		return err
	}

	return writef(os.Stdout, "Account %q created. Run `catadm login` to sign in.\n", opts.Username)
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if status := cmdCtx.App.Session.Initialize(cmdCtx.Ctx); status != domainauth.StatusAuthenticated {
		return errors.New("not signed in")
	}
	user, ok := cmdCtx.App.Session.CurrentUser()
	if !ok {
		return errors.New("not signed in")
	}

	if *asJSON {
		return printJSON(os.Stdout, user)
	}

	if err := writef(os.Stdout, "Username:  %s\n", user.Username); err != nil {
		return err
	}
	if user.Email != "" {
		if err := writef(os.Stdout, "Email:     %s\n", user.Email); err != nil {
			return err
		}
	}
	if err := writef(os.Stdout, "Admin:     %t\n", user.IsAdmin()); err != nil {
		return err
	}

	// Expiry is display metadata read from the token's own claims; the backend
	// stays the authority on whether the token is actually accepted.
	if pair, loadErr := cmdCtx.App.Tokens.Load(); loadErr == nil {
		if exp, ok := domainauth.TokenExpiry(pair.Access); ok {
			return writef(os.Stdout, "Token exp: %s\n", exp.Format(time.RFC3339))
		}
	}
	return nil
}

// requireAdmin resolves the stored session and refuses non-administrators.
// Catalog mutations and reads alike go through the admin endpoints, so every
// catalog command calls this first.
func requireAdmin(cmdCtx *commandContext) error {
	cmdCtx.App.Session.Initialize(cmdCtx.Ctx)
	switch cmdCtx.App.Session.Gate(true) {
	case domainauth.GateAllowed:
		return nil
	case domainauth.GateForbidden:
		return errors.New("administrator access required")
	default:
		return errors.New("not signed in; run `catadm login` first")
	}
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Account username (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted when omitted)")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return loginOptions{}, errors.New("--username is required")
	}
	if opts.Password == "" {
		password, err := promptLine("Password: ")
		if err != nil {
			return loginOptions{}, err
		}
		opts.Password = password
	}
	if opts.Password == "" {
		return loginOptions{}, errors.New("password must not be empty")
	}

	return opts, nil
}

func parseSignupFlags(args []string) (signupOptions, error) {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts signupOptions
	fs.StringVar(&opts.Username, "username", "", "Account username (required)")
	fs.StringVar(&opts.Email, "email", "", "Account email address")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted when omitted)")

	if err := fs.Parse(args); err != nil {
		return signupOptions{}, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Username == "" {
		return signupOptions{}, errors.New("--username is required")
	}
	if opts.Password == "" {
		password, err := promptLine("Password: ")
		if err != nil {
			return signupOptions{}, err
		}
		opts.Password = password
	}
	if opts.Password == "" {
		return signupOptions{}, errors.New("password must not be empty")
	}

	return opts, nil
}

func promptLine(prompt string) (string, error) {
	if err := writef(os.Stderr, "%s", prompt); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
