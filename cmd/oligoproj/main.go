// cmd/oligoproj/main.go
package main

import (
	"oligotools/internal/appshell"
	"oligotools/internal/projapp"
)

func main() {
	appshell.Main(projapp.RunContext)
}
