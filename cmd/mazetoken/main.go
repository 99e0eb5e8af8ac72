// Command mazetoken prints a bearer token for the protected maze routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/token"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	envs, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazetoken: %v\n", err)
		os.Exit(1)
	}
	if envs.JWTSecret == "" {
		envs.JWTSecret = config.MustGetEnv("JWT_SECRET")
	}

	tokenizer := token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	signed, err := tokenizer.Generate(*subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazetoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
