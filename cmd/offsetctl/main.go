package main

import (
	"fmt"
	"os"

	"github.com/kafkaclient/gokafka/cmd/offsetctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
