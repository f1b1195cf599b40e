package main

import "github.com/OpenTraceLab/ltnet/cmd/ltnet/cmd"

func main() {
	cmd.Execute()
}
