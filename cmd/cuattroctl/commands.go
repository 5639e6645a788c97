package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"cuattro/internal/catalog"
	"cuattro/internal/category"
	"cuattro/internal/llm"

	"go.uber.org/zap"
)

// API is the subset of the REST client the commands use.
type API interface {
	Menu(ctx context.Context) ([]catalog.Group, error)
	Suggest(ctx context.Context, request string) (*llm.Suggestion, error)
	GetOrCreateCategory(ctx context.Context, name string) (*category.Category, error)
	CreateItem(ctx context.Context, in catalog.ItemInput) (*catalog.Item, error)
}

func printMenu(ctx context.Context, api API, out io.Writer) error {
	groups, err := api.Menu(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(g.Category.Name))
		for _, it := range g.Items {
			fmt.Fprintf(tw, "  %d\t%s\t%d %s\tR$ %s\n", it.ID, it.Name, it.BaseQuantity, it.Unit, it.Price.StringFixed(2))
		}
	}
	return tw.Flush()
}

func suggest(ctx context.Context, api API, text string, out io.Writer) error {
	s, err := api.Suggest(ctx, text)
	if err != nil {
		return err
	}
	if len(s.Items) == 0 {
		fmt.Fprintln(out, "Nenhuma sugestão.")
	}
	for _, it := range s.Items {
		fmt.Fprintf(out, "- item %d: %g (%s)\n", it.ItemID, it.Quantity, it.Reasoning)
	}
	fmt.Fprintf(out, "Estimativa: R$ %.2f\n", s.TotalEstimate)
	for _, n := range s.DietaryNotes {
		fmt.Fprintf(out, "* %s\n", n)
	}
	return nil
}

func ensureCategory(ctx context.Context, api API, name string, out io.Writer) error {
	c, err := api.GetOrCreateCategory(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d\t%s\n", c.ID, c.Name)
	return nil
}

func importCatalog(ctx context.Context, api API, path string, out io.Writer, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	seed, err := readSeed(f)
	if err != nil {
		return err
	}

	// Each distinct category name is resolved once.
	categoryIDs := map[string]int{}
	for _, s := range seed.Items {
		var categoryID *int
		if name := strings.TrimSpace(s.Category); name != "" {
			key := strings.ToLower(name)
			id, ok := categoryIDs[key]
			if !ok {
				c, err := api.GetOrCreateCategory(ctx, name)
				if err != nil {
					return fmt.Errorf("categoria %q: %w", name, err)
				}
				id = c.ID
				categoryIDs[key] = id
			}
			categoryID = &id
		}

		item, err := api.CreateItem(ctx, s.input(categoryID))
		if err != nil {
			return fmt.Errorf("item %q: %w", s.Name, err)
		}
		logger.Debug("item imported", zap.Int("item_id", item.ID), zap.String("name", item.Name))
		fmt.Fprintf(out, "%d\t%s\n", item.ID, item.Name)
	}
	return nil
}
