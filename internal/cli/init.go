package cli

import (
	"github.com/spark-tools/viewport/internal/config"
	"github.com/spark-tools/viewport/internal/devconfig"
	"github.com/spark-tools/viewport/internal/prompt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Store the DEV settings of your local Confluence",
	Long: `Ask for the base URL and credentials of the Confluence instance used during
development and save them as the DEV section of the settings file.

An existing DEV section is kept as a backup section named after the current
UTC time, e.g. DEV_2026-10-15T12:00:00Z.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		in := &devconfig.Initializer{
			Prompter: prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout()),
			Open:     openStore,
			Out:      cmd.OutOrStdout(),
			Logger:   newLogger(cmd.ErrOrStderr()),
		}
		_, err := in.Run(ctx)
		return err
	},
}

// openStore opens the dev settings file named by --rc-file, the rc_file
// setting or the default location.
func openStore() (*devconfig.File, error) {
	path, err := config.RCPath()
	if err != nil {
		return nil, err
	}
	return devconfig.Open(path)
}
