package main

import "multireasoner/cmd"

func main() {
	cmd.Execute()
}
