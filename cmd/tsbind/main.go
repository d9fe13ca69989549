package main

import "martianoff/tsbind/cmd/tsbind/commands"

func main() {
	commands.Execute()
}
