package main

import "github.com/coronacheck/hc1dump/cmd"

func main() {
	cmd.Execute()
}
