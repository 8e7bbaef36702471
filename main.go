package main

import "github.com/inovacc/diarypush/cmd"

func main() {
	cmd.Execute()
}
