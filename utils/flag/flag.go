/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
	"os"
	"strings"
)

const (
	APIServer      = "api_server"
	ProposalSyncer = "proposal_syncer"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'proposal_syncer'")
	// Test binaries register their -test.* flags after package init, so
	// parsing here would reject them; the testing package parses instead.
	if !strings.HasSuffix(os.Args[0], ".test") {
		flag.Parse()
	}
}
