package main

import (
	"os"

	"github.com/X-Seti/Deepsearch/cmd/deepsearch"
)

func main() {
	os.Exit(deepsearch.Execute())
}
