// Command formkit validates form data, serves field suggestions and keeps
// saved form records.
package main

import "github.com/mesh-intelligence/formkit/internal/cli"

func main() {
	cli.Execute()
}
