package main

import "github.com/alfarhan/hr-fleet-management/cmd"

func main() {
	cmd.Execute()
}
