package main

import "release-metadata/internal/cli"

func main() {
	cli.Execute()
}
