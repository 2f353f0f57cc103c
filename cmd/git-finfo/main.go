package main

import "github.com/yejune/git-finfo/cmd"

func main() {
	cmd.Execute()
}
