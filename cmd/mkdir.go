package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var MkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a folder path, reusing existing segments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		fid, err := newClient().FindOrCreatePath(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("mkdir failed: %+v", err)
		}
		fmt.Println(fid)
	},
}

func init() {
	RootCmd.AddCommand(MkdirCmd)
}
