package main

import "github.com/lennart-voss/mpy8/cmd"

func main() {
	cmd.Execute()
}
