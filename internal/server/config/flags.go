package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret key
//	-t int      session token validity, minutes (0 = no expiry)
//	-x string   data source: http | postgres | s3
//	-l string   directory API base URL
//	-m string   credential store: static | postgres
//	-n string   collation language (BCP 47)
//	-w int      collaborator request timeout, seconds
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only these flags are read from os.Args (see flagx.ParseSubset); the
// config-file flag is handled by parseFile.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes, 0 = no expiry)")
	fs.StringVar(&config.DataSource, "x", config.DataSource, "data source (http, postgres, s3)")
	fs.StringVar(&config.DirectoryURL, "l", config.DirectoryURL, "directory API base URL")
	fs.StringVar(&config.CredentialStore, "m", config.CredentialStore, "credential store (static, postgres)")
	fs.StringVar(&config.CollationLanguage, "n", config.CollationLanguage, "collation language")
	requestTimeout := fs.Int("w", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	flagx.ParseSubset(fs, "a", "d", "s", "t", "x", "l", "m", "n", "w", "u", "p", "b", "g", "e")

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
