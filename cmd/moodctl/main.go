package main

import "github.com/pscheid92/moodreact/internal/cli"

func main() {
	cli.Execute()
}
