package main

import "github.com/sadopc/pixeltrainer/internal/cli"

func main() {
	cli.Execute()
}
