package main

import "intergalactic/cmd"

func main() {
	cmd.Execute()
}
