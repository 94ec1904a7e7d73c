package main

import "github.com/gnames/gutendb/cmd"

func main() {
	cmd.Execute()
}
