package main

import "github.com/RomanEngeler1805/deep-research-agent/cmd"

func main() {
	cmd.Execute()
}
