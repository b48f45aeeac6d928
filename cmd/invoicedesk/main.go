package main

import (
	"fmt"
	"os"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/cli"
)

func main() {
	// Help, the skeleton and config commands work without a full app
	skipInit := false
	debug := false
	for i, a := range os.Args[1:] {
		switch {
		case a == "-h" || a == "--help" || a == "help":
			skipInit = true
		case i == 0 && (a == "blank" || a == "config" || a == "completion"):
			skipInit = true
		case a == "--debug" || a == "--debug=true":
			debug = true
		}
	}

	if !skipInit {
		a, err := app.New(app.Options{Debug: debug})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
