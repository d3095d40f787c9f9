package main

import (
	"github.com/changelog-ci/changelog-ci/internal/infra/controllers/cli"
)

func main() {
	cli.Main()
}
