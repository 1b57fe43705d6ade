package main

import "github.com/notevault/vaultmcp/cmd"

func main() {
	cmd.Execute()
}
