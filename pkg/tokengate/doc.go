// Package tokengate provides per-account admission control for Go applications.
//
// TokenGate implements the token bucket algorithm over a whole-second clock:
// each account owns a bucket holding up to capacity tokens, one token
// regenerates every refill-interval seconds, and a request is admitted only
// if a token is available when it arrives.
//
// # Quick Start
//
//	registry := tokengate.NewRegistry()
//	if _, err := registry.RegisterNew("acme", 10, 5); err != nil {
//	    log.Fatal(err)
//	}
//
//	admitted, err := registry.Admit("acme", time.Now().Unix())
//	if err != nil {
//	    log.Fatal(err) // unknown account
//	}
//	if !admitted {
//	    fmt.Println("rate limited, try again shortly")
//	}
//
// The caller supplies the time as whole seconds since epoch, so tests can
// drive refill without sleeping.
//
// # HTTP Middleware
//
//	gate, _ := tokengate.NewGate(registry,
//	    tokengate.WithExtractor(tokengate.ExtractHeader("X-Account-ID")),
//	)
//	http.Handle("/api/", gate.Middleware(yourHandler))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and, when a
// request is rejected, a Retry-After header with the bucket's refill interval.
//
// # Token Bucket Algorithm
//
// Refill is lazy and discrete: tokens accrue only at whole refill-interval
// boundaries, computed from the last admitted request at the moment of the
// next admission decision. The last-admission timestamp advances only on a
// successful admission, so time spent being rejected still counts toward the
// next token.
//
// # Concurrency
//
// All operations are thread-safe:
//   - sync.RWMutex around the account map
//   - sync.Mutex per bucket, making refill-then-consume atomic
//   - admissions for different accounts never contend
//
// Buckets are registered and removed explicitly. The registry never creates
// a bucket on demand; admitting for an unknown account returns
// ErrAccountNotFound.
package tokengate
