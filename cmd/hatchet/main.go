// Hatchet CLI -- capture, rewrite and craft network packets.
package main

import "github.com/sharksforarms/hatchet/cmd/hatchet/commands"

func main() {
	commands.Execute()
}
