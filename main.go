package main

import "github.com/MyCarrier-DevOps/go-prsemver/cmd"

func main() {
	cmd.Execute()
}
