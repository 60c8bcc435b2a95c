package main

import "github.com/docconnect/docconnect/cmd"

func main() {
	cmd.Execute()
}
