package main

import "github.com/aweris/filecache/cmd/filecache/cmd"

func main() {
	cmd.Execute()
}
