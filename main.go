package main

import "github.com/tradesim/scenariobuild/cmd"

func main() {
	cmd.Execute()
}
