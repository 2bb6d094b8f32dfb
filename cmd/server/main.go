package main

import "github.com/nguyentranbao-ct/price-bot/cmd"

func main() {
	cmd.Execute()
}
