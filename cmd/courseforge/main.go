package main

import "github.com/courseforge/courseforge/cmd"

func main() {
	cmd.Execute()
}
