// Command hxview renders and inspects YAML view definitions.
package main

import (
	"context"
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
