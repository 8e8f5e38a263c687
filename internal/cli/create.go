package cli

import (
	"fmt"
	"os"

	"github.com/spark-tools/viewport/internal/branding"
	"github.com/spark-tools/viewport/internal/config"
	"github.com/spark-tools/viewport/internal/devconfig"
	"github.com/spark-tools/viewport/internal/fetch"
	"github.com/spark-tools/viewport/internal/prompt"
	"github.com/spark-tools/viewport/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "Create a new theme project from a template",
	Long: `Create a new Scroll Viewport theme project in the current directory.

The project key names the new folder and the npm package. The chosen template
repository is downloaded into that folder, package.json receives the key and
version, and the build script is filled with the DEV settings stored by init.`,
	Example: "  " + branding.CLIName() + " create",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		logger := newLogger(cmd.ErrOrStderr())
		c := &scaffold.Creator{
			Prompter: prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout()),
			Fetcher: fetch.New(
				fetch.WithLogger(logger),
				fetch.WithBaseURL(fetch.ProviderGitHub, config.Get(config.KeyGitHubURL)),
				fetch.WithBaseURL(fetch.ProviderGitLab, config.Get(config.KeyGitLabURL)),
				fetch.WithBaseURL(fetch.ProviderBitbucket, config.Get(config.KeyBitbucketURL)),
			),
			OpenStore: func() (devconfig.Store, error) {
				f, err := openStore()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
			Out:    cmd.OutOrStdout(),
			Logger: logger,
		}
		_, err = c.Run(ctx, cwd)
		return err
	},
}
