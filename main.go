package main

import "github.com/hifzhub/murajaah/cmd"

func main() {
	cmd.Execute()
}
