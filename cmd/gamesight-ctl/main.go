// gamesight-ctl pokes the running assistant; bind it to a desktop hotkey to
// start a voice capture without touching the terminal.
package main

import (
	"fmt"

	"gamesight/internal/ipc"
)

func main() {
	err := ipc.SendCommand("trigger")
	if err != nil {
		fmt.Println("gamesight not running:", err)
		return
	}
}
