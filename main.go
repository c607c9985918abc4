/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package main

import "github.com/gnames/wcvpseed/cmd"

func main() {
	cmd.Execute()
}
