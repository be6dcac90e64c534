//go:build !testcoverage

package main

import "os"

func main() {
	code, err := run(os.Args, DefaultConfig())
	if err != nil {
		fatal("%v", err)
	}
	exitFunc(code)
}
