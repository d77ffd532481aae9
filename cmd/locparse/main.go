package main

import "locparse/internal/cli"

func main() {
	cli.Execute()
}
