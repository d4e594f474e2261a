// Package main provides the nbcheck CLI for linting and formatting
// documentation notebooks.
package main

func main() {
	Execute()
}
