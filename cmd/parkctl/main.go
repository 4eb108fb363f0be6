package main

import "themepark/internal/cli"

func main() {
	cli.Execute()
}
