package main

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"fmt"
	"os"

	"github.com/wcgcyx/journaldb/cli"
)

func main() {
	app := cli.NewCLI()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "journaldb:", err.Error())
		os.Exit(1)
	}
}
