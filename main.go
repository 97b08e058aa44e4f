package main

import "github.com/jackchuka/nmclean/cmd"

func main() {
	cmd.Execute()
}
