package main

import "github.com/mahdiidarabi/vanity-keygen/internal/cli"

func main() {
	cli.Execute()
}
