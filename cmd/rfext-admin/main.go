// Command rfext-admin registers the extension with the host and assigns it
// to maps on behalf of the extension owner.
//
// Usage:
//
//	rfext-admin register [--host URL] [--base-url URL] [--cookie COOKIE]
//	rfext-admin assign --extension ID --map ID [--host URL] [--cookie COOKIE]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bhandras/rfext/internal/config"
	"github.com/bhandras/rfext/internal/hostapi"
	"github.com/bhandras/rfext/internal/manifest"
	"github.com/spf13/pflag"
)

const requestTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("expected a subcommand: register or assign")
	}
	sub, rest := args[0], args[1:]

	flags := pflag.NewFlagSet("rfext-admin "+sub, pflag.ContinueOnError)
	host := flags.String("host", "", "host API base URL (overrides RFEXT_HOST_BASE_URL)")
	cookie := flags.String("cookie", "", "owner session cookie (overrides RFEXT_OWNER_COOKIE)")
	baseURL := flags.String("base-url", "", "extension base URL (overrides RFEXT_BASE_URL)")
	extensionID := flags.String("extension", "", "extension id returned by register")
	mapID := flags.String("map", "", "map id to assign the extension to")
	dryRun := flags.Bool("dry-run", false, "print the registration document instead of sending it")
	if err := flags.Parse(rest); err != nil {
		return err
	}

	overrides := config.Overrides{}
	if flags.Changed("host") {
		overrides.HostBaseURL = host
	}
	if flags.Changed("cookie") {
		overrides.OwnerCookie = cookie
	}
	if flags.Changed("base-url") {
		overrides.BaseURL = baseURL
	}
	cfg, err := config.Load(overrides, config.Options{})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch sub {
	case "register":
		doc := manifest.Default(manifest.Identity{
			Name:        cfg.Name,
			Description: cfg.Description,
			BaseURL:     cfg.BaseURL,
			Email:       cfg.Email,
		})
		if *dryRun {
			return printJSON(out, doc)
		}
		client, err := hostapi.NewAdminClient(cfg.HostBaseURL, cfg.OwnerCookie, requestTimeout)
		if err != nil {
			return err
		}
		ext, err := client.Register(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "success, extension data =")
		return printJSON(out, ext)

	case "assign":
		client, err := hostapi.NewAdminClient(cfg.HostBaseURL, cfg.OwnerCookie, requestTimeout)
		if err != nil {
			return err
		}
		res, err := client.AssignToMap(ctx, *extensionID, *mapID)
		if err != nil {
			return err
		}
		return printJSON(out, res)

	default:
		return fmt.Errorf("unknown subcommand %q (expected register or assign)", sub)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
