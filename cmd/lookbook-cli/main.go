package main

import "lookbook/cmd/lookbook-cli/cmd"

func main() {
	cmd.Execute()
}
