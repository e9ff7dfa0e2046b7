// Package testutil provides test fixtures and utilities.
//
// Fixtures are embedded using go:embed:
//
//	fixtures/schema.toml   declaration file with every property kind
//	fixtures/schema.yaml   the same declarations in YAML
//	fixtures/config.conf   a stored configuration
//	fixtures/corrupt.conf  a truncated configuration file
//
// # Usage in Tests
//
//	func TestShow(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.WriteConfig(testutil.StoredConf)
//	    // run commands against env.Dir and env.Schema
//	}
package testutil
