package database

import (
	"fmt"
	"net/url"
	"strings"
)

// jdbcToDriver renames JDBC connection parameters to go-sql-driver ones.
// An empty target drops the parameter.
var jdbcToDriver = map[string]string{
	"characterEncoding":    "charset",
	"serverTimezone":       "loc",
	"useUnicode":           "",
	"zeroDateTimeBehavior": "",
}

// normalizeMySQLDSN accepts either a go-sql-driver DSN (returned as is) or
// a mysql:// / jdbc:mysql:// URL, and renders the latter as
// user:pass@tcp(host)/db?params. user/pass override the URL credentials.
func normalizeMySQLDSN(input, user, pass string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return strings.TrimSpace(input)
	}
	u, err := url.Parse(in)
	if err != nil {
		return in
	}

	q := u.Query()
	urlUser, urlPass := "", ""
	if u.User != nil {
		urlUser = u.User.Username()
		urlPass, _ = u.User.Password()
	}
	urlUser = firstNonEmpty(user, q.Get("user"), urlUser)
	urlPass = firstNonEmpty(pass, q.Get("password"), urlPass)
	q.Del("user")
	q.Del("password")

	for from, to := range jdbcToDriver {
		v := q.Get(from)
		q.Del(from)
		if to != "" && v != "" && q.Get(to) == "" {
			q.Set(to, v)
		}
	}
	if ssl := strings.ToLower(q.Get("useSSL")); ssl != "" {
		q.Del("useSSL")
		switch ssl {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", ssl)
		default:
			q.Set("tls", "false")
		}
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := urlUser
	if urlPass != "" {
		cred += ":" + urlPass
	}
	if cred != "" {
		cred += "@"
	}
	return fmt.Sprintf("%stcp(%s)/%s?%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"), q.Encode())
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
