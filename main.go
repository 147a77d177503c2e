package main

import "github.com/mouse-blink/strokefix/cmd"

func main() {
	cmd.Execute()
}
