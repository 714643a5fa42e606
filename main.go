package main

import "snakinator/internal/game"

func main() {
	game.RunDesktop()
}
