// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/exemd/exemd/cmd/exemd"

func main() {
	cmd.Execute()
}
