package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"portfolio_cms/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	seedFile  string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import content from a YAML seed file",
	Long: `Import documents from a YAML file keyed by collection name.

Each key is a collection (skills, projects, developer_services, gallery, tools,
designer_services, sketches, books, thoughts, snippets, roadmaps, articles,
messages) holding a list of documents. The profile key holds a single mapping.
Documents go through the same validation as the API.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yml", "seed file")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing documents of each seeded collection first")
}

func runSeed(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return err
	}
	data, err := parseSeed(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", seedFile, err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := seed(cmd.Context(), a.services.Importers, data, seedReset)
	for _, line := range report {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return err
}

// parseSeed converts the YAML seed into JSON documents per collection.
func parseSeed(raw []byte) (map[string][]json.RawMessage, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	out := make(map[string][]json.RawMessage, len(doc))
	for collection, v := range doc {
		var items []any
		switch t := v.(type) {
		case []any:
			items = t
		case map[string]any:
			items = []any{t}
		case nil:
			continue
		default:
			return nil, fmt.Errorf("%s: expected a list or a mapping, got %T", collection, v)
		}

		for i, item := range items {
			b, err := json.Marshal(jsonCompatible(item))
			if err != nil {
				return nil, fmt.Errorf("%s item %d: %w", collection, i, err)
			}
			out[collection] = append(out[collection], b)
		}
	}
	return out, nil
}

// jsonCompatible rewrites YAML-decoded values so encoding/json accepts them.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	case time.Time:
		// unquoted dates such as 2025-01-02 are kept as the author wrote them
		if t.Equal(t.Truncate(24 * time.Hour)) {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

// seed imports every collection in data through its importer, in a stable order.
// Unknown collections fail before anything is written.
func seed(ctx context.Context, importers []service.Importer, data map[string][]json.RawMessage, reset bool) ([]string, error) {
	byName := make(map[string]service.Importer, len(importers))
	for _, imp := range importers {
		byName[imp.CollectionName()] = imp
	}

	names := make([]string, 0, len(data))
	for name := range data {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown collection %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var report []string
	for _, name := range names {
		imp := byName[name]
		if reset {
			n, err := imp.Purge(ctx)
			if err != nil {
				return report, fmt.Errorf("reset %s: %w", name, err)
			}
			report = append(report, fmt.Sprintf("%s: removed %d", name, n))
		}
		n, err := imp.Import(ctx, data[name])
		if err != nil {
			return report, err
		}
		report = append(report, fmt.Sprintf("%s: imported %d", name, n))
	}
	return report, nil
}
