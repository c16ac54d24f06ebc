package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate one sample logic tree problem and print it",
	Long: `Sends the sample prompt to the configured chat completion endpoint
(OPENAI_API_URL, OPENAI_API_KEY) and prints the answer.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		text, err := newSampleClient(logger).Complete(cmd.Context())
		if err != nil {
			logger.Error("sample request failed", zap.Error(err))
			return fmt.Errorf("sample request failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
