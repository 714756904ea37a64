package main

import "github.com/nsxzhou1114/blog-core/cmd"

func main() {
	cmd.Execute()
}
