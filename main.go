package main

import "github.com/KaRthiK15789/tablechat-cli/cmd"

func main() {
	cmd.Execute()
}
