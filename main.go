package main

import "github.com/Azsael/CdkDemo/cmd"

func main() {
	cmd.Execute()
}
