package main

import "github.com/XS227/StreamerSite/cmd"

func main() {
	cmd.Execute()
}
