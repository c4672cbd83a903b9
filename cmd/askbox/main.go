package main

import "github.com/diogo/askbox/internal/commands"

func main() {
	commands.Execute()
}
