package main

import "github.com/corviu/corviu-go/cmd"

func main() {
	cmd.Execute()
}
