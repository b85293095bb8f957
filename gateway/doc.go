// Package gateway exposes the system over HTTP: mail listing, semantic
// search, question answering, index rebuild, statistics, and
// notification testing. Thin handlers over the mailmind System; all
// responses are JSON.
package gateway
