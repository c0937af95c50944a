package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/fiscaldoc/internal/engine"
	"github.com/rezonia/fiscaldoc/internal/model"
)

var generaCmd = &cobra.Command{
	Use:   "genera [inps|fatturapa|easyfatt] record.json",
	Short: "Generate a regulatory XML document from a JSON record file",
	Long: `Generate one of the three regulatory documents from a plain JSON
record file. The company identity is read from the environment
(COMPANY_FISCAL_CODE, COMPANY_NAME, ...).

Record file shapes:
  inps       {"worker": {...}, "event": {...}}
  fatturapa  {"number": ..., "counterpart": {...}, "items": [...]}
  easyfatt   {"invoices": [{...}, ...]}

Examples:
  fiscaldoc genera inps engagement.json -o comunicazione.xml
  fiscaldoc genera fatturapa invoice.json
  fiscaldoc genera easyfatt batch.json -o export.xml`,
	Args: cobra.ExactArgs(2),
	RunE: runGenera,
}

func init() {
	rootCmd.AddCommand(generaCmd)
}

func runGenera(cmd *cobra.Command, args []string) error {
	target, path := args[0], args[1]

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sender configuration: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}

	eng := engine.New(cfg.Sender())

	var result *engine.Result
	switch target {
	case "inps":
		var file engagementFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse record file: %w", err)
		}
		worker, event, err := file.toModel()
		if err != nil {
			return err
		}
		result, err = eng.GenerateINPS(worker, event)
		if err != nil {
			return err
		}

	case "fatturapa":
		var file invoiceFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse record file: %w", err)
		}
		inv, err := file.toModel()
		if err != nil {
			return err
		}
		result, err = eng.GenerateFatturaPA(inv)
		if err != nil {
			return err
		}

	case "easyfatt":
		var file batchFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse record file: %w", err)
		}
		invoices := make([]*model.Invoice, 0, len(file.Invoices))
		for _, f := range file.Invoices {
			inv, err := f.toModel()
			if err != nil {
				return err
			}
			invoices = append(invoices, inv)
		}
		result, err = eng.GenerateEasyfatt(invoices)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown document type %q (expected inps, fatturapa or easyfatt)", target)
	}

	printVerbose("generated %s document %s (%d bytes)\n", result.Format, result.Filename, len(result.Document))

	if outputPath != "" {
		return os.WriteFile(outputPath, result.Document, 0644)
	}
	_, err = os.Stdout.Write(result.Document)
	return err
}
