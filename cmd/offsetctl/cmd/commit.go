package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kafkaclient/gokafka/client"
	"github.com/kafkaclient/gokafka/offsetmanager"
)

var (
	commitPartition int32
	commitOffset    int64
	commitMetadata  string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit an offset for one partition",
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().Int32Var(&commitPartition, "partition", 0, "partition to commit")
	commitCmd.Flags().Int64Var(&commitOffset, "offset", 0, "offset to commit")
	commitCmd.Flags().StringVar(&commitMetadata, "metadata", "", "commit metadata")
}

func runCommit(cmd *cobra.Command, args []string) error {
	if groupFlag == "" || topicFlag == "" {
		return errors.New("--group and --topic are required")
	}

	coordinator, err := client.DialCoordinator(bootstrapFlag, clientIdFlag, groupFlag)
	if err != nil {
		return errors.Wrap(err, "error dialing coordinator")
	}

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}

	m := offsetmanager.New(coordinator, groupFlag, topicFlag, partitionsFlag, cfg, logger, nil)
	defer m.Stop()

	if err := m.Commit(commitPartition, commitOffset, commitMetadata); err != nil {
		return errors.Wrap(err, "error committing offset")
	}
	logger.Info("committed", "partition", commitPartition, "offset", commitOffset)
	return nil
}
