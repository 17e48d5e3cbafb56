package main

import "github.com/pulsehq/pulse/cmd"

func main() {
	cmd.Execute()
}
