// Package pfclient provides the primary entry point for constructing a
// PassForge API client that implements the passforge.Client interface.
//
// It layers endpoint resolution, HTTP transport, and API key handling on top
// of the operation interfaces and types defined in the passforge package.
// Most applications should import pfclient to build a client, then use the
// returned passforge.Client to generate passwords and manage their team.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/passforge-io/passforge-go/pkg/passforge"
//	  "github.com/passforge-io/passforge-go/pkg/pfclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API key.
//	  cli, err := pfclient.New(ctx, &passforge.Config{APIKey: "pf_live_..."})
//	  if err != nil { log.Fatal(err) }
//
//	  pw, err := cli.Passwords().Generate(ctx, &passforge.GenerateRequest{
//	    Length:  24,
//	    Symbols: passforge.Bool(false),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = pw
//	}
//
// # Endpoint resolution
//
// The endpoint is resolved in order: the explicit Config.APIEndpoint, the
// PASSFORGE_API_ENDPOINT environment variable, then the production default
// https://api.passforge.io/v1. Endpoints without a scheme are assumed to be
// HTTPS.
//
// # Helpers
//
// The package also provides convenience constructors NewWithKey,
// NewWithEndpoint, and NewFromEnv that wrap New with the appropriate
// configuration.
package pfclient
