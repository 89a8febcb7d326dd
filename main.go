package main

import "github.com/monxcode/GeoSense-Udaipur/cmd"

func main() {
	cmd.Execute()
}
