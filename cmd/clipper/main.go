package main

import "github.com/bicced/Viral-AI-Video-Clipper/internal/cli"

func main() {
	cli.Main()
}
