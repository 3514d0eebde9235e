package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check the configured cookie and print the account nickname",
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		info := newClient().ValidateCookie(cmd.Context())
		if !info.Valid {
			log.Fatal("cookie is invalid or expired")
		}
		log.Infof("logged in as %s", info.Nickname)
	},
}

func init() {
	RootCmd.AddCommand(WhoamiCmd)
}
