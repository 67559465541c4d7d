package main

import "github.com/zetbrowse/zb/cmd"

func main() {
	cmd.Execute()
}
