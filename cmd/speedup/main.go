package main

import (
	"fmt"
	"os"

	"github.com/thiagonache/speedup"
)

func main() {
	if err := speedup.RunCLI(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
