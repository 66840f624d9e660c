// Command drampower estimates the power consumption of DRAM devices from
// command traces.
package main

import "github.com/sarchlab/drampower/cmd/drampower/cmd"

func main() {
	cmd.Execute()
}
