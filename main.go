package main

import "github.com/they4kman/swept/cmd"

func main() {
	cmd.Execute()
}
