//go:build !testcoverage

package main

import "os"

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fatal("%v", err)
	}
}
