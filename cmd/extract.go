package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/export"
	"github.com/aqlanhadi/pbsm/extractor"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts statement(s)",
	Long: `Extracts a given statement or every PDF statement in a folder.
Each file is classified and parsed with its statement grammar; files
that fail are logged and skipped.`,
	Run: runExtract,
}

type extractOptions struct {
	StatementType   common.StatementType
	TransactionOnly bool
	StatementOnly   bool
	XLSXPath        string
}

func runExtract(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	if len(args) == 1 {
		target = args[0]
	}

	opts := extractOptions{
		StatementType:   common.ParseStatementType(viper.GetString("extract.type")),
		TransactionOnly: viper.GetBool("extract.transaction_only"),
		StatementOnly:   viper.GetBool("extract.statement_only"),
		XLSXPath:        viper.GetString("extract.xlsx"),
	}

	if err := extract(os.Stdout, target, *loadConfig(), opts); err != nil {
		log.Fatal().Err(err).Str("path", target).Msg("extract failed")
	}
}

// extract writes one JSON document per run to out: an array of statements,
// or an array of records when TransactionOnly is set.
func extract(out io.Writer, target string, cfg config.Config, opts extractOptions) error {
	table, results, err := extractor.ExecuteAgainstPath(target, cfg, opts.StatementType)
	if err != nil {
		return err
	}

	var output interface{}
	if opts.TransactionOnly {
		output = table.Records()
	} else {
		statements := []interface{}{}
		for _, r := range results {
			if r.Err == nil {
				statements = append(statements, extractor.CreateFinalOutput(r.Statement, false, opts.StatementOnly))
			}
		}
		output = statements
	}

	if opts.XLSXPath != "" {
		if err := export.WriteXLSX(opts.XLSXPath, table.Records()); err != nil {
			return err
		}
		log.Info().Str("path", opts.XLSXPath).Int("records", table.Len()).Msg("wrote workbook")
	}

	asJSON, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(asJSON))
	return err
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("folder", "f", ".", "File or folder in which pbsm will scan for statements")
	extractCmd.Flags().StringP("type", "t", "", "Statement type override (paylah, cc, ...)")
	extractCmd.Flags().Bool("transaction-only", false, "Output only the assembled records")
	extractCmd.Flags().Bool("statement-only", false, "Omit records from each statement")
	extractCmd.Flags().String("xlsx", "", "Also write the assembled records to this .xlsx file")

	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))
	viper.BindPFlag("extract.type", extractCmd.Flags().Lookup("type"))
	viper.BindPFlag("extract.transaction_only", extractCmd.Flags().Lookup("transaction-only"))
	viper.BindPFlag("extract.statement_only", extractCmd.Flags().Lookup("statement-only"))
	viper.BindPFlag("extract.xlsx", extractCmd.Flags().Lookup("xlsx"))
}
