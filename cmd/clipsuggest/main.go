package main

import "github.com/moodclip/clipsuggest/internal/cli"

func main() {
	cli.Main()
}
