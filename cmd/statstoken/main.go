package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwtPkg "WynwoodBot/pkg/jwt"

	"github.com/joho/godotenv"
)

// Mints a bearer token for the /status/stats endpoint.
func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	subject := flag.String("subject", "operator", "who the token is issued to")
	flag.Parse()

	_ = godotenv.Load()

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{"sub": *subject}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("token: %s\nexpires_at: %s\n", token, time.Unix(expiresAt, 0).Format(time.RFC3339))
}
