// Package config provides configuration parsing for the reconciler CLI.
//
// The configuration is stored in reconciler.json, reconciler.yaml or
// reconciler.yml in the project directory. This package handles loading,
// saving, and validating configuration.
//
// # Configuration File Structure
//
//	name: demo
//	root:
//	  maxRendersPerPass: 10000
//	  dispatchBuffer: 256
//	target:
//	  kind: sqlite          # memory, sqlite, sql, s3, stream
//	  sql:
//	    dsn: renders.db
//	    table: reconciler_fibers
//	server:
//	  host: localhost
//	  port: 8080
//	metrics:
//	  enabled: true
//	log:
//	  level: info
//	  format: text
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Target:", cfg.Target.Kind)
package config
