package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

var dimensionsJSON bool

// dimensionsCmd represents the dimensions command
var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "Print the dimension catalog and the S→G mapping table",
	RunE:  runDimensions,
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)

	dimensionsCmd.Flags().BoolVar(&dimensionsJSON, "json", false, "emit the catalog as JSON")
}

type catalogEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Layer         string   `json:"layer"`
	Template      string   `json:"template"`
	DefaultLevel  string   `json:"default_level"`
	DefaultWeight int      `json:"default_weight"`
	SlotTypes     []string `json:"slot_types,omitempty"`
	Candidates    []string `json:"grounding_candidates,omitempty"`
}

func runDimensions(cmd *cobra.Command, args []string) error {
	var entries []catalogEntry
	for _, layer := range []model.Layer{model.LayerStructural, model.LayerGrounding} {
		for _, d := range taxonomy.ListByLayer(layer) {
			entry := catalogEntry{
				ID:            d.ID,
				Name:          d.Name,
				Layer:         string(d.Layer),
				Template:      d.Template,
				DefaultLevel:  string(d.DefaultLevel),
				DefaultWeight: d.DefaultWeight,
			}
			for _, s := range d.SlotTypes {
				entry.SlotTypes = append(entry.SlotTypes, string(s))
			}
			if layer == model.LayerStructural {
				candidates, err := taxonomy.CandidatesFor(d.ID)
				if err != nil {
					return err
				}
				entry.Candidates = candidates
			}
			entries = append(entries, entry)
		}
	}

	if dimensionsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("\nStructural dimensions (S → grounding candidates):")
	for _, e := range entries {
		if e.Layer != string(model.LayerStructural) {
			continue
		}
		candidates := strings.Join(e.Candidates, ", ")
		if candidates == "" {
			candidates = "none (operational)"
		}
		fmt.Printf("  %-4s %-24s [%s, w%d] → %s\n", e.ID, e.Name, e.DefaultLevel, e.DefaultWeight, candidates)
	}

	fmt.Println("\nGrounding dimensions:")
	for _, e := range entries {
		if e.Layer != string(model.LayerGrounding) {
			continue
		}
		fmt.Printf("  %-4s %-24s [%s, w%d] slots: %s\n", e.ID, e.Name, e.DefaultLevel, e.DefaultWeight, strings.Join(e.SlotTypes, ", "))
	}
	fmt.Println()

	return nil
}
