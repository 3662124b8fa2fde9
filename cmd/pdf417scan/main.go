// Command pdf417scan decodes PDF417 symbols from images, directories of
// images and PDFs, or serves decoding over HTTP.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
