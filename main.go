package main

import (
	"os"

	"github.com/yeremiapane/interior-consult/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}
