package main

import "github.com/Tiliavir/timesheet-validator/cmd"

func main() {
	cmd.Execute()
}
