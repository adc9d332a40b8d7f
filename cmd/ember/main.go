package main

import "ember/cmd/ember/root"

func main() {
	root.Execute()
}
