package main

import (
	"github.com/p5gen/p5gen/internal/cli"
)

func main() {
	cli.Execute()
}
