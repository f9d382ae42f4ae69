package main

import "github.com/dossou/afriwiki/cmd"

func main() {
	cmd.Execute()
}
