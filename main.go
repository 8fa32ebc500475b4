package main

import "github.com/ardanlabs/protocol-converter/cmd"

func main() {
	cmd.Execute()
}
