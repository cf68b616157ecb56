package main

import "github.com/KaramelBytes/seguro-stats/cmd"

func main() {
	cmd.Execute()
}
