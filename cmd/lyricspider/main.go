package main

import "lyricspider/internal/cli"

func main() {
	cli.Execute()
}
