package main

import "vidmix/internal/cli"

func main() {
	cli.Execute()
}
