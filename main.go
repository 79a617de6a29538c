package main

import (
	"github.com/freshet/freshet/cmd"
)

func main() {
	cmd.Execute()
}
