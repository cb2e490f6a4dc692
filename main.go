package main

import "nutrient-sync/cmd"

func main() {
	cmd.Execute()
}
