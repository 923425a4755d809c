// cmd/overlap/main.go
package main

import (
	"oligotools/internal/app"
	"oligotools/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
