// Package main provides the CLI entrypoint for hoverbar.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
