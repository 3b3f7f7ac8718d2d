package main

import "github.com/kyoungmook/claude-dashboard/cmd"

func main() {
	cmd.Execute()
}
