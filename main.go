// SPDX-License-Identifier: GPL-2.0-or-later
package main

import "bspdecomp/cmd"

func main() {
	cmd.Execute()
}
