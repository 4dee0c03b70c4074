package config

import (
	"flag"
	"os"
	"time"

	"github.com/hmori/flashcards/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-i string   JWT issuer claim
//	-u string   JWT audience claim
//	-t int      access token TTL, seconds
//	-l int      clock-skew leeway, seconds
//	-m string   auth mode ("bearer" or "session")
//	-e int      session TTL, seconds
//	-k string   session cookie hash key
//	-o string   allowed CORS origins, comma separated
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with flags parsed elsewhere (such as
// the -n/-envfile dotenv flag).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-u", "-t", "-l", "-m", "-e", "-k", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")
	fs.StringVar(&config.JWTIssuer, "i", config.JWTIssuer, "JWT issuer")
	fs.StringVar(&config.JWTAudience, "u", config.JWTAudience, "JWT audience")

	accessTokenTTL := fs.Int("t", int(config.AccessTokenTTL.Seconds()), "access token TTL (in seconds)")
	leeway := fs.Int("l", int(config.JWTLeeway.Seconds()), "clock-skew leeway (in seconds)")

	fs.StringVar(&config.AuthMode, "m", config.AuthMode, "auth mode (bearer or session)")
	sessionTTL := fs.Int("e", int(config.SessionTTL.Seconds()), "session TTL (in seconds)")
	fs.StringVar(&config.SessionHashKey, "k", config.SessionHashKey, "session cookie hash key")

	origins := fs.String("o", "", "allowed CORS origins, comma separated")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenTTL = time.Duration(*accessTokenTTL) * time.Second
	config.JWTLeeway = time.Duration(*leeway) * time.Second
	config.SessionTTL = time.Duration(*sessionTTL) * time.Second
	if *origins != "" {
		config.CORSOrigins = splitOrigins(*origins)
	}
}
