package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kafkaclient/gokafka/client"
	"github.com/kafkaclient/gokafka/offsetmanager"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll and print committed offsets for every partition",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "poll interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		for p := int32(0); p < partitionsFlag; p++ {
			offset, meta, err := fetchWithFallbackLeader(m, p)
			if err != nil {
				logger.Warn("fetch failed", "partition", p, "error", err)
				continue
			}
			fmt.Printf("%s/%d\toffset=%d\tmetadata=%q\n", topicFlag, p, offset, meta)
		}
		<-ticker.C
	}
}
