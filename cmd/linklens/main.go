// Package main provides the entry point for the LinkLens CLI.
package main

func main() {
	Execute()
}
