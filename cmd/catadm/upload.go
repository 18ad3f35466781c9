package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brickstash/catadm/internal/domain/catalog"
)

type uploadCmdOptions struct {
	File        string
	ContentType string
	// AttachKind/AttachID/AttachField identify the record field to PATCH with
	// the public URL after a successful upload. Empty AttachKind means upload
	// only.
	AttachKind  catalog.Kind
	AttachID    int64
	AttachField string
}

func runUploadImage(cmdCtx *commandContext, args []string) error {
	opts, err := parseUploadCmdFlags(args)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	f, err := os.Open(opts.File)
	if err != nil {
		return fmt.Errorf("open image file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	publicURL, err := cmdCtx.App.Uploader.UploadImage(
		cmdCtx.Ctx,
		filepath.Base(opts.File),
		opts.ContentType,
		f,
	)
	if err != nil {
		return err
	}

	if opts.AttachKind == "" {
		return writeln(os.Stdout, publicURL)
	}

	payload, err := json.Marshal(map[string]string{opts.AttachField: publicURL})
	if err != nil {
		return fmt.Errorf("encode attach payload: %w", err)
	}
	if _, err := cmdCtx.App.API.Update(cmdCtx.Ctx, opts.AttachKind, opts.AttachID, json.RawMessage(payload)); err != nil {
		return fmt.Errorf("image uploaded to %s but attaching it failed: %w", publicURL, err)
	}

	return writef(os.Stdout, "Uploaded and attached: %s\n", publicURL)
}

func parseUploadCmdFlags(args []string) (uploadCmdOptions, error) {
	fs := flag.NewFlagSet("upload-image", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var kindRaw string
	var opts uploadCmdOptions
	fs.StringVar(&opts.File, "file", "", "Path to the image file (required)")
	fs.StringVar(&opts.ContentType, "content-type", "", "MIME type (guessed from the extension when omitted)")
	fs.StringVar(&kindRaw, "kind", "", "Kind of the record to attach the image to")
	fs.Int64Var(&opts.AttachID, "id", 0, "Id of the record to attach the image to")
	fs.StringVar(&opts.AttachField, "field", "image_url", "Record field to write the public URL into")

	if err := fs.Parse(args); err != nil {
		return uploadCmdOptions{}, err
	}

	if strings.TrimSpace(opts.File) == "" {
		return uploadCmdOptions{}, errors.New("--file is required")
	}

	if kindRaw != "" || opts.AttachID != 0 {
		if kindRaw == "" || opts.AttachID <= 0 {
			return uploadCmdOptions{}, errors.New("--kind and --id must be provided together")
		}
		kind, err := catalog.ParseKind(kindRaw)
		if err != nil {
			return uploadCmdOptions{}, err
		}
		opts.AttachKind = kind
		if strings.TrimSpace(opts.AttachField) == "" {
			return uploadCmdOptions{}, errors.New("--field must not be empty")
		}
	}

	return opts, nil
}
