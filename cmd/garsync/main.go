package main

import "github.com/garmtools/garsync/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
