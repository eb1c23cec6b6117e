package main

import "workhours/cmd"

func main() {
	cmd.Execute()
}
