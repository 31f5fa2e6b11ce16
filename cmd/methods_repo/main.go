package main

import "github.com/broadinstitute/methods-repo/internal/cli"

func main() {
	cli.Execute()
}
