// Package confect binds flat string properties to typed configuration
// structs.
//
// A Binder is constructed over a snapshot of a key/value map (loaded from a
// file, the environment, or any other source) and populates configuration
// types through per-attribute setters discovered from struct tags:
//
//	type ServerConfig struct {
//	    Host    string        `prop:"host"`
//	    Port    int           `prop:"port" deprecated:"old-port"`
//	    Timeout time.Duration `prop:"timeout"`
//	}
//
//	b := confect.New(map[string]string{
//	    "server.host":    "0.0.0.0",
//	    "server.port":    "8080",
//	    "server.timeout": "30s",
//	})
//
//	cfg, err := confect.BuildPrefixed[ServerConfig](ctx, b, "server")
//
// # Deprecated keys
//
// The deprecated tag lists legacy property keys in order. When only a
// deprecated key is present its value is applied and a warning is recorded
// naming the canonical replacement. When a deprecated key and the canonical
// key disagree, the conflict is an error and the attribute is left unset.
//
// # Coercion
//
// Raw values are converted to the setter's declared type by the first
// matching rule: a converter registered via WithConverter (time.Duration
// and time.Time are built in), encoding.TextUnmarshaler, then the string,
// bool, integer, and float kinds. Booleans accept only the literal
// true/false tokens, case-insensitively.
//
// # Problem aggregation
//
// A bind never stops at the first misconfiguration. Every resolution
// conflict, coercion failure, and setter error across all attributes is
// collected and returned as one *BindError so a caller sees the complete
// set of problems in a single pass. Warnings never fail a bind; each
// recorded problem is also forwarded to the binder's Monitor as it occurs.
//
// # Custom metadata
//
// Attribute discovery is pluggable. WithProvider replaces the default
// tag-driven provider with any Provider implementation; metadata is derived
// at most once per type per binder, concurrently safe, and recomputed on a
// later call if a derivation fails.
package confect
