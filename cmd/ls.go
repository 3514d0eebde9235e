package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vaultsync/quarkdrive/quark"
)

var LsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List a folder (the root when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		fid := quark.RootFolderID
		if len(args) > 0 {
			fid = args[0]
		}
		nodes, err := newClient().ListFiles(cmd.Context(), fid)
		if err != nil {
			log.Fatalf("list failed: %+v", err)
		}
		for _, n := range nodes {
			kind := "file"
			if n.IsDir {
				kind = "dir "
			}
			fmt.Printf("%s  %s  %10d  %s  %s\n", n.ID, kind, n.Size,
				n.Updated.Format("2006-01-02 15:04:05"), n.Name)
		}
	},
}

func init() {
	RootCmd.AddCommand(LsCmd)
}
