package main

import "backdrop/cmd"

func main() {
	cmd.Execute()
}
