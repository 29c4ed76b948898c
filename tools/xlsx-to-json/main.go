// Command xlsx-to-json converts the promotions spreadsheet export into the
// JSON dataset read by the promotions API.
package main

import (
	"os"

	"github.com/Manakin-Wraith/Cheap-Cheap/converter"
	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	"github.com/Manakin-Wraith/Cheap-Cheap/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultSource = "pnp_data/pnp_promotion_18dec_24.xlsx"
	defaultTarget = "pnp_data/output.json"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		source string
		target string
		env    string
		opts   converter.Options
	)

	cmd := &cobra.Command{
		Use:   "xlsx-to-json",
		Short: "Convert the promotions spreadsheet into the API dataset",
		Long: `xlsx-to-json reads the first sheet of a promotions export, maps its first
five columns to src, product-grid-item__info-container__name, price, old and
ng-star-inserted, and writes the rows as a JSON array.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := logger.New(env)
			if err != nil {
				return err
			}
			defer log.Sync()

			report(log, source, target, opts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", defaultSource, "Spreadsheet (.xlsx) to read")
	cmd.Flags().StringVarP(&target, "target", "o", defaultTarget, "JSON file to write (overwritten)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&opts.SkipHeader, "skip-header", false, "Treat the first row as a header and drop it")
	cmd.Flags().BoolVar(&opts.TruncateExtraColumns, "truncate-extra", false, "Drop cells past the fifth column instead of failing")
	cmd.Flags().StringVar(&env, "env", "development", "Logger mode: development or production")

	return cmd
}

// report runs the conversion and logs its outcome. Failures are reported, not
// returned: the command's exit status does not reflect them.
func report(log *zap.Logger, source, target string, opts converter.Options) {
	res, err := converter.Convert(source, target, opts)
	switch {
	case err == nil:
		log.Info("Successfully converted",
			zap.String("source", source),
			zap.String("target", target),
			zap.String("sheet", res.Sheet),
			zap.Int("records", res.Records),
		)
	case apperrors.IsNotFound(err):
		log.Error("XLSX file not found", zap.String("source", source), zap.Error(err))
	default:
		log.Error("conversion failed",
			zap.String("source", source),
			zap.String("target", target),
			zap.String("kind", apperrors.KindOf(err).String()),
			zap.Error(err),
		)
	}
}
