package main

import "github.com/sarchlab/scopetrace/scopetrace/cmd"

func main() {
	cmd.Execute()
}
