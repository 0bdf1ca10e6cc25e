package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in the
// application: strings for identifiers and secrets, a float for the editor
// grid scale.
type Config struct {
    Env       string  // application environment (e.g. "dev", "prod")
    Port      string  // HTTP port to listen on
    DBUser    string  // database username
    DBPass    string  // database password (optional)
    DBHost    string  // database host address
    DBPort    string  // database port number
    DBName    string  // database name
    JWTSecret string  // secret used to verify access tokens issued by the auth service
    GridSize  float64 // default grid cell size for the server-side relabel endpoint
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  GRID_SIZE is
// optional and defaults to 10 world units (one foot).
func Load() Config {
    return Config{
        Env:       must("APP_ENV"),      // environment (dev/test/prod)
        Port:      must("APP_PORT"),     // port to bind the HTTP server
        DBUser:    must("DB_USER"),      // database user
        DBPass:    os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:    must("DB_HOST"),      // database host
        DBPort:    must("DB_PORT"),      // database port
        DBName:    must("DB_NAME"),      // database name
        JWTSecret: must("JWT_SECRET"),   // secret used for verifying JWTs
        GridSize:  floatOr("GRID_SIZE", 10), // grid cell size in world units
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// floatOr retrieves an optional float environment variable, falling back to
// def when the variable is unset or not a valid positive number.
func floatOr(key string, def float64) float64 {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil || f <= 0 {
        log.Printf("invalid float for %s: %q, using default %v", key, s, def)
        return def
    }
    return f
}
