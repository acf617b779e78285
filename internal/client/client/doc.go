// Package client wires the translator client together.
//
// New builds the token store, the HTTP pipeline and the API facades over one
// base URL. OpenStore opens the durable store named by the config: an SQLite
// database with embedded goose migrations applied, or a Redis server.
package client
