package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tendant/content-items/pkg/contentstore"
	"github.com/tendant/content-items/pkg/contentstore/config"
)

type rootOptions struct {
	slotURL    string
	slotKey    string
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "contentctl",
		Short: "Edit a persisted list of content items",
		Long: `contentctl opens the content item list stored in a slot backend,
applies one operation and prints the resulting list as JSON.

The slot is chosen with --slot or SLOT_URL:
  none                      keep the list in memory only
  memory://                 in-process memory (lost on exit)
  file:///path/to/dir       one JSON file per key
  s3://bucket?region=...    S3 or MinIO object
  redis://host:6379/0       Redis string key
  sqlite:///path/slots.db   SQLite table
  postgres://...            Postgres table`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.slotURL, "slot", "", "slot backend URL (overrides SLOT_URL)")
	flags.StringVar(&opts.slotKey, "key", "", "slot key (overrides SLOT_KEY)")
	flags.StringVar(&opts.configFile, "config", "", "YAML, JSON or TOML config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newRemoveCmd(opts),
		newSetCmd(opts),
		newClearCmd(opts),
	)
	return rootCmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the current list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, nil)
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		id      string
		typ     string
		content string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an item to the list",
		Example: `  contentctl add --type headline --content "Release notes"
  contentctl add --type codeBlock --content "go test ./..." --id build-step`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}
			item := contentstore.ContentItem{
				ID:      id,
				Type:    contentstore.ContentType(typ),
				Content: content,
			}
			return run(cmd, opts, func(store *contentstore.Store, logger *slog.Logger) {
				if !item.Type.IsValid() {
					logger.Warn("Unknown content type, adding anyway", "type", item.Type, "known", contentstore.ContentTypes)
				}
				store.Add(cmd.Context(), item)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "item id (a random UUID when omitted)")
	cmd.Flags().StringVar(&typ, "type", "", "item type: codeBlock, headline, image or table")
	cmd.Flags().StringVar(&content, "content", "", "item content")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update INDEX CONTENT",
		Short: "Replace the content of the item at INDEX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(store *contentstore.Store, _ *slog.Logger) {
				store.UpdateAt(cmd.Context(), index, args[1])
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove INDEX",
		Aliases: []string{"rm"},
		Short:   "Remove the item at INDEX",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(store *contentstore.Store, _ *slog.Logger) {
				store.RemoveAt(cmd.Context(), index)
			})
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set FILE",
		Short: "Replace the whole list with the JSON array in FILE (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			items, err := contentstore.Decode(data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			return run(cmd, opts, func(store *contentstore.Store, _ *slog.Logger) {
				store.Set(cmd.Context(), items)
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(store *contentstore.Store, _ *slog.Logger) {
				store.Set(cmd.Context(), []contentstore.ContentItem{})
			})
		},
	}
}

// run opens the store, applies mutate (if any) and prints the last list the
// store published to its subscribers.
func run(cmd *cobra.Command, opts *rootOptions, mutate func(*contentstore.Store, *slog.Logger)) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store, closeStore, err := cfg.BuildStore(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close slot backend", "err", err)
		}
	}()

	var latest []contentstore.ContentItem
	unsubscribe := store.Subscribe(func(items []contentstore.ContentItem) {
		latest = items
	})
	defer unsubscribe()

	if mutate != nil {
		mutate(store, logger)
	}

	return printItems(cmd.OutOrStdout(), latest)
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var options []config.Option
	if opts.configFile != "" {
		options = append(options, config.WithFile(opts.configFile))
	}
	options = append(options, config.WithEnv())

	flags := cmd.Flags()
	if flags.Changed("slot") {
		options = append(options, config.WithSlotURL(opts.slotURL))
	}
	if flags.Changed("key") {
		options = append(options, config.WithSlotKey(opts.slotKey))
	}
	if opts.verbose {
		options = append(options, config.WithLogLevel("debug"))
	}

	cfg, err := config.Load(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func printItems(w io.Writer, items []contentstore.ContentItem) error {
	if items == nil {
		items = []contentstore.ContentItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", raw, err)
	}
	return index, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
