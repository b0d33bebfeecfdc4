package main

import "github.com/RyanBlaney/harmonia/internal/cli"

func main() {
	cli.Execute()
}
