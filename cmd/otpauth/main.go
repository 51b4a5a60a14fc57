package main

import "github.com/jeremyhahn/go-otpauth/internal/cli"

func main() {
	cli.Execute()
}
