package main

import "protein-annotator/internal/cli"

func main() {
	cli.Execute()
}
