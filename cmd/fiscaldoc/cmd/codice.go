package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/fiscaldoc/internal/fiscalcode"
)

var codiceCmd = &cobra.Command{
	Use:   "codice [codes...]",
	Short: "Validate and decode fiscal codes",
	Long: `Validate one or more Italian fiscal codes and decode the personal
data embedded in the valid ones (sex and birth date).

Examples:
  fiscaldoc codice RSSMRA80A01H501U
  fiscaldoc codice RSSMRA80A01H501U BNCMRA85T45F205M -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCodice,
}

func init() {
	rootCmd.AddCommand(codiceCmd)
}

func runCodice(cmd *cobra.Command, args []string) error {
	results := make([]*CodiceResult, 0, len(args))
	allValid := true

	for _, code := range args {
		result := &CodiceResult{Code: code}
		if decoded, ok := fiscalcode.Decode(code); ok {
			result.Valid = true
			result.Sex = string(decoded.Sex)
			result.BirthDate = decoded.BirthDate.Format("2006-01-02")
		} else {
			allValid = false
		}
		results = append(results, result)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID  %s  born %s\n", r.Code, r.Sex, r.BirthDate)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.Code)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("some fiscal codes are invalid")
	}
	return nil
}
