package main

import "github.com/Mixilino/coffee-management/cmd/coffee"

func main() {
	coffee.Execute()
}
