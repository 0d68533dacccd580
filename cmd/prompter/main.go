// Command prompter is a terminal teleprompter.
package main

import "github.com/mesh-intelligence/prompter/internal/cli"

func main() {
	cli.Execute()
}
