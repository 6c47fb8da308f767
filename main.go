package main

import "github.com/soulgarden/futures-bot/cmd"

func main() {
	cmd.Execute()
}
