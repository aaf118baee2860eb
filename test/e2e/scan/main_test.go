package scan

import (
	"flag"
	"fmt"
	"os"
	"testing"
)

var vaultscanPath string

func TestMain(m *testing.M) {
	flag.StringVar(&vaultscanPath, "vaultscan", "./vaultscan", "path to vaultscan binary")
	flag.Parse()

	if vaultscanPath == "" {
		fmt.Fprintf(os.Stderr, "Error: missing --vaultscan flag\n")
		os.Exit(1)
	}

	ec := m.Run()
	os.Exit(ec)
}
