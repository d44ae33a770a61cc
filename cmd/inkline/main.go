package main

import "github.com/MeKo-Tech/inkline/cmd/inkline/cmd"

func main() {
	cmd.Execute()
}
