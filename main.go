package main

import "farmer-registry/cmd"

func main() {
	cmd.Execute()
}
