package main

import "github.com/alexiusacademia/eurobeam/cmd"

func main() {
	cmd.Execute()
}
