package main

import "github.com/xvierd/podium/cmd"

func main() {
	cmd.Execute()
}
