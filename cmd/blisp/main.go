package main

import (
	"github.com/funvibe/blisp/pkg/cli"
)

func main() {
	cli.Run()
}
