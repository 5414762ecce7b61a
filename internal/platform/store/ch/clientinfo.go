package ch

import (
	"os"
	"strings"

	"animefinder/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo tags queries in system.query_log with the process role and build
func clientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	host, _ := os.Hostname()
	commit := bi.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	or := func(s string) string {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return "unknown"
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: "animefinder", Version: or(tag)},
		{Name: "role", Version: or(role)},
		{Name: "build", Version: or(bi.Version)},
		{Name: "commit", Version: or(commit)},
		{Name: "host", Version: or(host)},
	}}
}
