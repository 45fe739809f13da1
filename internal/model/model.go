// Package model holds the domain types shared by the repository, service
// and handler layers: database rows (tagged with `db`) and API payloads
// (tagged with `json`).
package model
