package main

import "github.com/speechinformaticslab/vfclust/cmd"

func main() {
	cmd.Execute()
}
