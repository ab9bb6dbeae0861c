package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"eventregistration/config"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/domain"
)

const defaultTTL = 12 * time.Hour

// issuerFunc returns the signer used for one invocation.
type issuerFunc func() (domain.AccessTokenIssuer, error)

func main() {
	if err := newApp(issuerFromConfig, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			code = exit.ExitCode()
		}
		os.Exit(code)
	}
}

func issuerFromConfig() (domain.AccessTokenIssuer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return auth.NewJWTIssuer(cfg.JWTSecret), nil
}

func newApp(newIssuer issuerFunc, out io.Writer) *cli.App {
	return &cli.App{
		Name:           "token",
		Usage:          "Issue a bearer token for the admin API",
		Writer:         out,
		ErrWriter:      out,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Usage: "principal ID", Required: true},
			&cli.StringFlag{Name: "email", Usage: "principal e-mail"},
			&cli.StringSliceFlag{Name: "role", Usage: "role granted to the principal (repeatable)", Value: cli.NewStringSlice(auth.RoleAdmin)},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: defaultTTL},
		},
		Action: func(c *cli.Context) error {
			if c.Duration("ttl") <= 0 {
				return cli.Exit("ttl must be positive", 2)
			}
			issuer, err := newIssuer()
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			token, err := issuer.Issue(domain.Principal{
				ID:    c.String("subject"),
				Email: c.String("email"),
				Roles: c.StringSlice("role"),
			}, c.Duration("ttl"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}
}
