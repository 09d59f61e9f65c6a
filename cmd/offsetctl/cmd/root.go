// Package cmd implements offsetctl, a thin demo CLI over the offset
// manager: enough wiring to commit and fetch partition offsets against a
// real broker, not a general-purpose Kafka client.
package cmd

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kafkaclient/gokafka/internal/logging"
)

var (
	bootstrapFlag  string
	clientIdFlag   string
	groupFlag      string
	topicFlag      string
	partitionsFlag int32
	configFlag     string
	logLevelFlag   string

	logger hclog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "offsetctl",
	Short:         "Commit and fetch consumer group offsets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New("offsetctl", logLevelFlag)
		if clientIdFlag == "" {
			clientIdFlag = "offsetctl-" + uuid.NewString()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&bootstrapFlag, "bootstrap", "localhost:9092", "bootstrap broker address")
	rootCmd.PersistentFlags().StringVar(&clientIdFlag, "client-id", "", "client id (default: random)")
	rootCmd.PersistentFlags().StringVar(&groupFlag, "group", "", "consumer group id")
	rootCmd.PersistentFlags().StringVar(&topicFlag, "topic", "", "topic name")
	rootCmd.PersistentFlags().Int32Var(&partitionsFlag, "partitions", 1, "total partition count for topic")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to offset manager config YAML")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "trace, debug, info, warn, or error")

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(watchCmd)
}
