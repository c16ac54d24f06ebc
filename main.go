package main

import "logictree/cmd"

func main() {
	cmd.Execute()
}
