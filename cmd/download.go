package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var DownloadCmd = &cobra.Command{
	Use:   "download <fid> <local-file>",
	Short: "Download a file through a service-signed link",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		data, err := newClient().Download(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("download failed: %+v", err)
		}
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			log.Fatalf("write %s: %+v", args[1], err)
		}
		log.Infof("downloaded %d bytes to %s", len(data), args[1])
	},
}

func init() {
	RootCmd.AddCommand(DownloadCmd)
}
