package main

import "github.com/tansive/tristate/internal/cli"

func main() {
	cli.Execute()
}
