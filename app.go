package main

import "github.com/masmgr/gitscrub/cmd"

func main() {
	cmd.Run()
}
