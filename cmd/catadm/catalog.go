package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/brickstash/catadm/internal/domain/catalog"
)

type listCmdOptions struct {
	Kind   catalog.Kind
	Search string
	Select string
}

type getCmdOptions struct {
	Kind catalog.Kind
	ID   int64
}

type mutateCmdOptions struct {
	Kind    catalog.Kind
	ID      int64
	Payload json.RawMessage
}

type deleteCmdOptions struct {
	Kind catalog.Kind
	ID   int64
	Yes  bool
}

func runList(cmdCtx *commandContext, args []string) error {
	opts, err := parseListCmdFlags(args)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	ctrl := cmdCtx.App.Catalog
	if err := ctrl.SelectKind(cmdCtx.Ctx, opts.Kind); err != nil {
		return err
	}
	ctrl.SetSearchText(opts.Search)

	return printProjected(os.Stdout, ctrl.Filtered(), opts.Select)
}

func runGet(cmdCtx *commandContext, args []string) error {
	opts, err := parseGetCmdFlags(args)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	record, err := cmdCtx.App.API.Get(cmdCtx.Ctx, opts.Kind, opts.ID)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, record)
}

func runCreate(cmdCtx *commandContext, args []string) error {
	opts, err := parseMutateCmdFlags("create", args, false)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	record, err := cmdCtx.App.API.Create(cmdCtx.Ctx, opts.Kind, opts.Payload)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, record)
}

func runUpdate(cmdCtx *commandContext, args []string) error {
	opts, err := parseMutateCmdFlags("update", args, true)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	record, err := cmdCtx.App.API.Update(cmdCtx.Ctx, opts.Kind, opts.ID, opts.Payload)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, record)
}

func runDelete(cmdCtx *commandContext, args []string) error {
	opts, err := parseDeleteCmdFlags(args)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	if !opts.Yes {
		answer, promptErr := promptLine(fmt.Sprintf("Delete %s %d? Type yes to continue: ", opts.Kind, opts.ID))
		if promptErr != nil {
			return promptErr
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			return errors.New("aborted by user")
		}
	}

	if err := cmdCtx.App.API.Delete(cmdCtx.Ctx, opts.Kind, opts.ID); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted %s %d\n", opts.Kind, opts.ID)
}

func parseListCmdFlags(args []string) (listCmdOptions, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var kindRaw, search, sel string
	fs.StringVar(&kindRaw, "kind", "", kindFlagUsage())
	fs.StringVar(&search, "search", "", "Case-insensitive substring filter applied client-side")
	fs.StringVar(&sel, "select", "", "JMESPath expression projected over the result")

	if err := fs.Parse(args); err != nil {
		return listCmdOptions{}, err
	}

	kind, err := requireKind(kindRaw)
	if err != nil {
		return listCmdOptions{}, err
	}
	if sel != "" {
		if _, compileErr := jmespath.Compile(sel); compileErr != nil {
			return listCmdOptions{}, fmt.Errorf("invalid --select expression: %w", compileErr)
		}
	}

	return listCmdOptions{Kind: kind, Search: search, Select: sel}, nil
}

func parseGetCmdFlags(args []string) (getCmdOptions, error) {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var kindRaw string
	var id int64
	fs.StringVar(&kindRaw, "kind", "", kindFlagUsage())
	fs.Int64Var(&id, "id", 0, "Record id (required)")

	if err := fs.Parse(args); err != nil {
		return getCmdOptions{}, err
	}

	kind, err := requireKind(kindRaw)
	if err != nil {
		return getCmdOptions{}, err
	}
	if id <= 0 {
		return getCmdOptions{}, errors.New("--id is required")
	}

	return getCmdOptions{Kind: kind, ID: id}, nil
}

func parseMutateCmdFlags(name string, args []string, wantID bool) (mutateCmdOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var kindRaw, data, file string
	var id int64
	fs.StringVar(&kindRaw, "kind", "", kindFlagUsage())
	if wantID {
		fs.Int64Var(&id, "id", 0, "Record id (required)")
	}
	fs.StringVar(&data, "data", "", "Inline JSON payload")
	fs.StringVar(&file, "file", "", `Path to a JSON payload file ("-" for stdin)`)

	if err := fs.Parse(args); err != nil {
		return mutateCmdOptions{}, err
	}

	kind, err := requireKind(kindRaw)
	if err != nil {
		return mutateCmdOptions{}, err
	}
	if wantID && id <= 0 {
		return mutateCmdOptions{}, errors.New("--id is required")
	}

	payload, err := readPayload(data, file)
	if err != nil {
		return mutateCmdOptions{}, err
	}

	return mutateCmdOptions{Kind: kind, ID: id, Payload: payload}, nil
}

func parseDeleteCmdFlags(args []string) (deleteCmdOptions, error) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var kindRaw string
	var opts deleteCmdOptions
	fs.StringVar(&kindRaw, "kind", "", kindFlagUsage())
	fs.Int64Var(&opts.ID, "id", 0, "Record id (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return deleteCmdOptions{}, err
	}

	kind, err := requireKind(kindRaw)
	if err != nil {
		return deleteCmdOptions{}, err
	}
	if opts.ID <= 0 {
		return deleteCmdOptions{}, errors.New("--id is required")
	}
	opts.Kind = kind

	return opts, nil
}

func requireKind(raw string) (catalog.Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("--kind is required")
	}
	return catalog.ParseKind(raw)
}

func kindFlagUsage() string {
	return "Resource kind: " + kindList() + " (required)"
}

func kindList() string {
	kinds := catalog.AllKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// readPayload resolves the mutation body from --data or --file, validating
// that it is a JSON object.
func readPayload(data, file string) (json.RawMessage, error) {
	if data != "" && file != "" {
		return nil, errors.New("--data and --file are mutually exclusive")
	}

	var raw []byte
	switch {
	case data != "":
		raw = []byte(data)
	case file == "-":
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = stdin
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read payload file: %w", err)
		}
		raw = content
	default:
		return nil, errors.New("one of --data or --file is required")
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return json.RawMessage(raw), nil
}

// printProjected renders v as indented JSON, optionally after projecting it
// through a JMESPath expression. The value round-trips through encoding/json
// first so the expression sees the wire-level field names.
func printProjected(w io.Writer, v any, expr string) error {
	if expr == "" {
		return printJSON(w, v)
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode for projection: %w", err)
	}
	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("decode for projection: %w", err)
	}

	projected, err := jmespath.Search(expr, generic)
	if err != nil {
		return fmt.Errorf("evaluate --select: %w", err)
	}
	return printJSON(w, projected)
}
