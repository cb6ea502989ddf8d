// Package main is the entry point for the kvstat tool, which turns
// STALCRAFT scoreboard screenshots into squad statistics and serves them
// from a CLI and a Discord bot.
package main

import "github.com/Redex2xp/stalcraft-tab-kv-stat/cmd"

func main() {
	cmd.Execute()
}
