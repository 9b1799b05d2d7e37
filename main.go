package main

import "github.com/justiceplatform/courtnotify/cmd"

func main() {
	cmd.Execute()
}
