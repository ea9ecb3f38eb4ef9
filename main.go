package main

import "github.com/notargets/gogeo/cmd"

func main() {
	cmd.Execute()
}
