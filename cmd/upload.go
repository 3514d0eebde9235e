package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var uploadAttempts uint

var UploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-dir>",
	Short: "Upload a file; content already known to the service is reused without transfer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("read %s: %+v", args[0], err)
		}
		client := newClient()
		parent, err := client.FindOrCreatePath(cmd.Context(), args[1])
		if err != nil {
			log.Fatalf("resolve %s: %+v", args[1], err)
		}
		name := filepath.Base(args[0])
		var fid string
		// The client itself never retries; transfer-level retry policy
		// belongs to the caller.
		err = retry.Do(func() error {
			var uerr error
			fid, uerr = client.Upload(cmd.Context(), parent, name, data, func(p float64) {
				log.Debugf("upload %s: %.0f%%", name, p)
			})
			return uerr
		}, retry.Attempts(uploadAttempts), retry.Delay(time.Second))
		if err != nil {
			log.Fatalf("upload failed: %+v", err)
		}
		log.Infof("uploaded %s (fid %s)", name, fid)
	},
}

func init() {
	UploadCmd.Flags().UintVar(&uploadAttempts, "attempts", 3, "attempts for the whole transfer")
	RootCmd.AddCommand(UploadCmd)
}
