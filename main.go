package main

import "github.com/theirongolddev/chatwrap/cmd"

func main() {
	cmd.Execute()
}
