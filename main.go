package main

import "github.com/barangay/docucheck/cmd"

func main() {
	cmd.Execute()
}
