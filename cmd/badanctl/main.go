package main

import "github.com/mcoot/badancup/internal/cli"

func main() {
	cli.Execute()
}
