package main

import "github.com/Stefan-migo/businessManagementApp-sub001/cmd"

func main() {
	cmd.Execute()
}
