package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [path...]",
	Short: "Print the statement type of each PDF",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := classify(os.Stdout, args, loadConfig().Classifier); err != nil {
			log.Fatal().Err(err).Msg("classify failed")
		}
	},
}

// classify prints "<file>\t<type>" for every PDF under paths. Unreadable
// files are reported and skipped.
func classify(out io.Writer, paths []string, cfg config.Classifier) error {
	for _, path := range paths {
		files, err := extractor.PDFFiles(path)
		if err != nil {
			return err
		}
		for _, file := range files {
			name := filepath.Base(file)
			statementType := extractor.Classify(name, "", cfg)
			if statementType == common.Unknown {
				src, err := common.OpenPDF(file)
				if err != nil {
					log.Warn().Err(err).Str("source", name).Msg("cannot open")
					continue
				}
				if statementType, err = extractor.ClassifySource(name, src, cfg); err != nil {
					log.Warn().Err(err).Str("source", name).Msg("cannot classify")
					continue
				}
			}
			fmt.Fprintf(out, "%s\t%s\n", name, statementType)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
