package main

import "github.com/yujunjiex/git-merge-checker/cmd"

func main() {
	cmd.Execute()
}
