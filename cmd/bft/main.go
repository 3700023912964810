package main

import "github.com/maw3193/bft/internal/cli"

func main() {
	cli.Execute()
}
