// Package passforge provides types, interfaces, and helpers for working with
// the PassForge password generation API.
//
// # Overview
//
// The passforge package defines the domain types (e.g., Password,
// BulkPasswords, TeamInfo, Usage) and the interfaces for the operation
// clients (PasswordsClient, TeamClient). A concrete implementation of these
// clients is provided by the pfclient package, which wires configuration,
// transport, authentication, and endpoint resolution. Most consumers should
// import pfclient to construct a client and then interact with the interfaces
// exposed here.
//
// Getting a client
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
//	  cli, err := pfclient.New(ctx, &passforge.Config{APIKey: "pf_live_1234567890"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Generate one password with the default settings
//	  pw, err := cli.Passwords().Generate(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = pw
//	}
//
// # Errors
//
// Failures are represented by the package sentinels (ErrInvalidCredential,
// ErrInvalidRequest, ErrTimeout) and the typed RemoteError and ParseError.
// Helpers such as IsTimeout, IsNotFound, IsUnauthorized, and IsQuotaExceeded
// make it easy to branch on common cases, and RemoteError supports errors.Is
// against the status sentinels directly.
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (for logging, auth headers, metrics, rate limiting) and a
// simple pluggable Cache abstraction with in-memory and NATS KV backends. The
// pfclient package composes these pieces for a sensible default client;
// applications with advanced needs can also use these primitives directly.
package passforge
