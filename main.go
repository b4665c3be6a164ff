package main

import "github.com/brogergvhs/xkcdbot/cmd"

func main() {
	cmd.Execute()
}
