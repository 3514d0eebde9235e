package main

import "github.com/vaultsync/quarkdrive/cmd"

func main() {
	cmd.Execute()
}
