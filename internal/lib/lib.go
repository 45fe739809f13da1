// Package lib groups the modules that do not fit strictly into a layer.
//
// Subpackages: background jobs on Redis (job, asynq), transactional email
// (email, Resend), uploaded image storage (storage), dependency health
// probes (health) and small helpers (utils).
package lib
