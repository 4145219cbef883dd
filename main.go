// Cypht credential-verification service: decides whether a webmail
// login is valid by checking it against one configured backend (local
// database, IMAP, POP3 or LDAP) and exports the authenticated remote
// connection settings to the session for the mail modules to reuse.
package main

import (
	"flag"
	"log"

	"github.com/Pyons/cypht/internal/bootstrap"
	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		version.PrintVersion()
		return
	}

	cfg := config.Load()
	if err := bootstrap.Run(cfg); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
