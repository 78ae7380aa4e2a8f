package main

import "github.com/kallasto/go-tag-rule-engine/cmd"

func main() {
	cmd.Execute()
}
