package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var RmCmd = &cobra.Command{
	Use:   "rm <fid>",
	Short: "Move a file or folder to the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		if err := newClient().Delete(cmd.Context(), args[0]); err != nil {
			log.Fatalf("delete failed: %+v", err)
		}
		log.Infof("moved %s to trash", args[0])
	},
}

func init() {
	RootCmd.AddCommand(RmCmd)
}
