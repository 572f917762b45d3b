package main

import "github.com/diffstokes/cutcell/cmd"

func main() {
	cmd.Execute()
}
