package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aqlanhadi/pbsm/archive"
	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	renameArchive bool
	renameDryRun  bool
	renameType    string
)

var renameCmd = &cobra.Command{
	Use:   "rename [path...]",
	Short: "Rename statements to <type>-<YYYYMMDD>.pdf",
	Long: `Renames each parsed statement to its canonical name. With --archive
the file is moved to the NAS mount (NAS_ADDR01_LOCAL) or uploaded to the
configured Cloud Storage bucket instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var archiver archive.Archiver
		if renameArchive {
			var err error
			archiver, err = archive.New(cfg.Archive)
			if err != nil {
				log.Fatal().Err(err).Msg("archive unavailable")
			}
		}

		if err := rename(cmd.Context(), os.Stdout, args, *cfg, archiver); err != nil {
			log.Fatal().Err(err).Msg("rename failed")
		}
	},
}

// rename files every statement under paths by its canonical name. A nil
// archiver renames in place.
func rename(ctx context.Context, out io.Writer, paths []string, cfg config.Config, archiver archive.Archiver) error {
	if ctx == nil {
		ctx = context.Background()
	}
	override := common.ParseStatementType(renameType)

	for _, path := range paths {
		files, err := extractor.PDFFiles(path)
		if err != nil {
			return err
		}

		for _, file := range files {
			statement, err := extractor.ProcessFile(file, cfg, override)
			if err != nil {
				log.Warn().Err(err).Msg("skipping")
				continue
			}
			name, err := archive.NameFor(statement)
			if err != nil {
				log.Warn().Err(err).Str("source", statement.Source).Msg("skipping")
				continue
			}

			if renameDryRun {
				fmt.Fprintf(out, "%s -> %s\n", filepath.Base(file), name)
				continue
			}

			var dst string
			if archiver != nil {
				dst, err = archiver.Archive(ctx, file, name)
			} else {
				dst, err = archive.Rename(file, name)
			}
			if err != nil {
				log.Error().Err(err).Str("source", statement.Source).Msg("rename failed")
				continue
			}
			log.Info().Str("source", statement.Source).Str("to", dst).Msg("renamed")
			fmt.Fprintf(out, "%s -> %s\n", filepath.Base(file), dst)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().BoolVar(&renameArchive, "archive", false, "Move to the NAS or upload to Cloud Storage instead of renaming in place")
	renameCmd.Flags().BoolVarP(&renameDryRun, "dry-run", "n", false, "Print the new names without touching files")
	renameCmd.Flags().StringVarP(&renameType, "type", "t", "", "Statement type override (auto-detected if not set)")
}
