// Command storyboard inspects and maintains a storyboard content graph.
package main

import "github.com/mesh-intelligence/storyboard/internal/cli"

func main() {
	cli.Main()
}
