package main

import "github.com/klytics/sheetkit/cmd"

func main() {
	cmd.Execute()
}
