package main

import "github.com/holmes89/quizbank/cmd"

func main() {
	cmd.Execute()
}
