package main

import "github.com/mouse-blink/codeaudit/cmd"

func main() {
	cmd.Execute()
}
