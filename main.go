package main

import "github.com/splitmate/splitmate/cmd"

func main() {
	cmd.Execute()
}
