package main

import "onbox-config-copy/cmd"

func main() {
	cmd.Execute()
}
