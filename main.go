package main

import "github.com/fgrehm/surf/cmd"

func main() {
	cmd.Execute()
}
